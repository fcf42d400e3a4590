package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) calculateCmd() *cobra.Command {
	var (
		flags    scenarioFlags
		format   string
		save     bool
		scenario string
	)

	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Compare current tax against the cut for one or more scenarios",
		Long: `Compare current federal tax against the tax after a rate cut.

Inputs come from an input file, or from flags layered over your preferences.

Examples:
  taxcut calculate --income 103350 --status single --savings 111.3
  taxcut calculate --income 250000 --savings 200 --scope topFour -f compact
  taxcut calculate scenarios.yaml --scenario big_cut -f json --save
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, cfg, err := a.loadScenarios(cmd, args, &flags)
			if err != nil {
				return err
			}
			if scenario != "" {
				scenarios, err = selectScenario(scenarios, scenario)
				if err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("format") {
				if prefs, err := a.preferences(); err == nil && prefs.Output.Format != "" {
					format = prefs.Output.Format
				}
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			engine, err := a.newEngine(cfg)
			if err != nil {
				return err
			}
			results, err := engine.RunScenarios(cmd.Context(), scenarios)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, result := range results {
				if save {
					path, err := output.WriteFormatted(f, result, fileExtension(f.Name()))
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Wrote %s\n", path)
					continue
				}
				data, err := f.Format(result)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, string(data))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json, html)")
	cmd.Flags().BoolVar(&save, "save", false, "Write each report to a timestamped file instead of stdout")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Only run the named scenario from the input file")
	return cmd
}

func selectScenario(scenarios []domain.Scenario, name string) ([]domain.Scenario, error) {
	for _, s := range scenarios {
		if strings.EqualFold(s.Name, name) {
			return []domain.Scenario{s}, nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found", name)
}

func fileExtension(format string) string {
	switch format {
	case "csv", "json", "html":
		return format
	default:
		return "txt"
	}
}
