package main

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/spf13/cobra"
)

// scenarioFlags are the calculator inputs accepted on the command line
type scenarioFlags struct {
	income  string
	status  string
	savings string
	scope   string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.income, "income", "i", "", "Taxable income, e.g. 103350 or $103,350 (unparseable text counts as 0)")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "Filing status (single, married)")
	cmd.Flags().StringVar(&f.savings, "savings", "", "Revenue savings funding the cut")
	cmd.Flags().StringVar(&f.scope, "scope", "", "Brackets the cut applies to (all, topFour)")
}

// changed reports whether any input flag was set
func (f *scenarioFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"income", "status", "savings", "scope"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply overlays the flags that were set onto base
func (f *scenarioFlags) apply(cmd *cobra.Command, base domain.Scenario) (domain.Scenario, error) {
	s := base
	if cmd.Flags().Changed("income") {
		s.Income = domain.ParseIncome(f.income)
	}
	if cmd.Flags().Changed("status") {
		status, err := domain.ParseFilingStatus(f.status)
		if err != nil {
			return s, err
		}
		s.FilingStatus = status
	}
	if cmd.Flags().Changed("savings") {
		savings, err := domain.ParseAmount(f.savings)
		if err != nil {
			return s, fmt.Errorf("--savings: %w", err)
		}
		if savings.IsNegative() {
			return s, fmt.Errorf("--savings: %w", domain.ErrNegativeSavings)
		}
		s.Savings = savings
	}
	if cmd.Flags().Changed("scope") {
		scope, err := domain.ParseReductionScope(f.scope)
		if err != nil {
			return s, err
		}
		s.Scope = scope
	}
	return s, nil
}

var errFlagsWithFile = errors.New("--income, --status, --savings and --scope cannot be combined with an input file")

// loadScenarios resolves the scenarios to run: the input file's scenarios when
// a file is given, otherwise the preferences overlaid with the flags.
func (a *app) loadScenarios(cmd *cobra.Command, args []string, flags *scenarioFlags) ([]domain.Scenario, *domain.Configuration, error) {
	if len(args) == 1 {
		if flags.changed(cmd) {
			return nil, nil, errFlagsWithFile
		}
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return nil, nil, err
		}
		return cfg.ResolveScenarios(), cfg, nil
	}

	prefs, err := a.preferences()
	if err != nil {
		return nil, nil, err
	}
	base, err := prefs.Scenario()
	if err != nil {
		return nil, nil, err
	}
	base.Name = "command line"
	s, err := flags.apply(cmd, base)
	if err != nil {
		return nil, nil, err
	}
	return []domain.Scenario{s}, nil, nil
}
