package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/session"
	"github.com/spf13/cobra"
)

// promptValues holds the raw form answers
type promptValues struct {
	Income  string
	Status  domain.FilingStatus
	Savings string
	Scope   domain.ReductionScope
	Again   bool
}

func (a *app) promptCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Enter income, filing status, savings and scope in a guided form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			initial, err := prefs.Scenario()
			if err != nil {
				return err
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown output format %q", format)
			}
			engine, err := a.newEngine(nil)
			if err != nil {
				return err
			}

			state := session.New(initial, session.WithEngine(engine))
			err = runPrompt(state, cmd.OutOrStdout(), f, askHuh)
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json, html)")
	return cmd
}

// runPrompt loops asking for inputs and prints each recomputed comparison.
// Results reach the output through a session subscription.
func runPrompt(state *session.State, out io.Writer, f output.Formatter, ask func(*promptValues) error) error {
	var printErr error
	unsubscribe := state.Subscribe(func(snap session.Snapshot) {
		if snap.Comparison == nil {
			return
		}
		data, err := f.Format(snap.Comparison)
		if err != nil {
			printErr = err
			return
		}
		fmt.Fprint(out, string(data))
	})
	defer unsubscribe()

	for {
		sc := state.Scenario()
		v := promptValues{
			Income:  sc.Income.String(),
			Status:  sc.FilingStatus,
			Savings: sc.Savings.String(),
			Scope:   sc.Scope,
		}
		if err := ask(&v); err != nil {
			return err
		}

		savings, err := domain.ParseAmount(v.Savings)
		if err != nil {
			return err
		}
		err = state.SetInputs(domain.Scenario{
			Income:       domain.ParseIncome(v.Income),
			FilingStatus: v.Status,
			Savings:      savings,
			Scope:        v.Scope,
		})
		if err != nil {
			return err
		}
		if printErr != nil {
			return printErr
		}
		if !v.Again {
			return nil
		}
		fmt.Fprintln(out)
	}
}

// askHuh renders the input form in the terminal
func askHuh(v *promptValues) error {
	statusOptions := make([]huh.Option[domain.FilingStatus], 0, len(domain.FilingStatuses))
	for _, s := range domain.FilingStatuses {
		statusOptions = append(statusOptions, huh.NewOption(s.Label(), s))
	}
	scopeOptions := make([]huh.Option[domain.ReductionScope], 0, len(domain.ReductionScopes))
	for _, s := range domain.ReductionScopes {
		scopeOptions = append(scopeOptions, huh.NewOption(s.Label(), s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Taxable income").
				Description("Unparseable text counts as $0").
				Value(&v.Income),
			huh.NewSelect[domain.FilingStatus]().
				Title("Filing status").
				Options(statusOptions...).
				Value(&v.Status),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Revenue savings").
				Description("Funds the flat rate cut").
				Validate(validateSavings).
				Value(&v.Savings),
			huh.NewSelect[domain.ReductionScope]().
				Title("Apply the cut to").
				Options(scopeOptions...).
				Value(&v.Scope),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Try another scenario afterwards?").
				Value(&v.Again),
		),
	)
	return form.Run()
}

func validateSavings(text string) error {
	d, err := domain.ParseAmount(text)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return domain.ErrNegativeSavings
	}
	return nil
}
