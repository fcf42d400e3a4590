package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func (a *app) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [single|married]",
		Short: "Print the bracket tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := domain.FilingStatuses
			if len(args) == 1 {
				status, err := domain.ParseFilingStatus(args[0])
				if err != nil {
					return err
				}
				statuses = []domain.FilingStatus{status}
			}

			engine, err := a.newEngine(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, status := range statuses {
				brackets, err := engine.Tables.Lookup(status)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%d %s\n", engine.Tables.Year, status.Label())
				fmt.Fprintln(out, strings.Repeat("-", 32))
				for j, b := range brackets {
					marker := ""
					if domain.ScopeTopFour.Applies(j) {
						marker = "  (top four)"
					}
					fmt.Fprintf(out, "%d  %-22s %5s%s\n", j+1, output.FormatRange(b.Min, b.Max), output.FormatRate(b.Rate), marker)
				}
			}
			return nil
		},
	}
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the quick tax cut presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			registry, err := presetRegistry(prefs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetPresetHelp(registry))

			custom := lo.Map(prefs.Presets, func(p config.PresetPreference, _ int) string { return p.Name })
			if len(custom) > 0 {
				fmt.Fprintf(out, "\nFrom preferences: %s\n", strings.Join(custom, ", "))
			}
			return nil
		},
	}
}
