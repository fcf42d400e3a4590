package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/compare"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	var (
		flags         scenarioFlags
		with          string
		transforms    []string
		scenarioNames []string
		format        string
		listPresets   bool
	)

	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a base scenario against presets, transforms or file scenarios",
		Long: `Compare a base scenario against alternative tax cuts.

Examples:
  taxcut compare --income 250000 --with cut_100,cut_200,top4_100
  taxcut compare --income 90000 --transform set_savings:amount=150 --transform set_scope:scope=topFour
  taxcut compare scenarios.yaml                      # file scenarios against its base
  taxcut compare scenarios.yaml --with cut_500 -f csv
  taxcut compare --list-presets
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			registry, err := presetRegistry(prefs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if listPresets {
				fmt.Fprint(out, transform.GetPresetHelp(registry))
				return nil
			}

			scenarios, cfg, err := a.loadScenarios(cmd, args, &flags)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(cfg)
			if err != nil {
				return err
			}
			compareEngine := compare.NewCompareEngine(engine, registry)

			var set *compare.ComparisonSet
			presets := transform.ParsePresetList(with)
			switch {
			case len(presets) > 0 || len(transforms) > 0:
				parsed, err := parseTransforms(transforms)
				if err != nil {
					return err
				}
				set, err = compareEngine.Compare(cmd.Context(), scenarios[0], compare.CompareOptions{
					Presets:    presets,
					Transforms: parsed,
				})
				if err != nil {
					return fmt.Errorf("comparison failed: %w", err)
				}
			case cfg != nil:
				if len(cfg.Scenarios) == 0 {
					return errors.New("input file has no scenarios to compare (use --with or --transform)")
				}
				set, err = compareEngine.CompareScenarios(cmd.Context(), cfg, scenarioNames)
				if err != nil {
					return fmt.Errorf("comparison failed: %w", err)
				}
			default:
				return errors.New("--with or --transform is required without an input file (see --list-presets)")
			}

			if len(args) == 1 {
				set.ConfigPath = args[0]
			}
			return writeComparisonSet(cmd, set, format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated presets to compare")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Transform spec applied to the base, e.g. set_savings:amount=150 (repeatable)")
	cmd.Flags().StringSliceVar(&scenarioNames, "scenarios", nil, "Input file scenarios to compare (default all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listPresets, "list-presets", false, "List all available presets")
	return cmd
}

func parseTransforms(specs []string) ([]transform.ScenarioTransform, error) {
	registry := transform.NewTransformRegistry()
	out := make([]transform.ScenarioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func writeComparisonSet(cmd *cobra.Command, set *compare.ComparisonSet, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		text, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, text)
	case "json":
		text, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(out, text)
	case "compact", "mobile":
		fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(set))
	case "table", "console", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	return nil
}
