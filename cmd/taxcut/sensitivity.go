package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) sensitivityCmd() *cobra.Command {
	var (
		flags        scenarioFlags
		parameters   []string
		analysisType string
		format       string
		scenario     string
	)

	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep income or savings and show how the personal saving responds",
		Long: `Sweep one or two scenario inputs and tabulate current tax, new tax and saving.

Parameters are given as name:min-max:steps, where name is income or savings.
A bare name uses its default range.

Examples:
  taxcut sensitivity --income 103350 --status single --parameter income:50000-250000:5
  taxcut sensitivity --parameter income --parameter savings --analysis-type multi
  taxcut sensitivity --parameter income:50000-500000:4 --parameter savings:0-300:4 --analysis-type matrix -f csv
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewSensitivityFormatter(format)
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: table, csv, json)", format)
			}

			params, err := parseSensitivityParameters(parameters)
			if err != nil {
				return err
			}

			scenarios, cfg, err := a.loadScenarios(cmd, args, &flags)
			if err != nil {
				return err
			}
			if scenario != "" {
				if scenarios, err = selectScenario(scenarios, scenario); err != nil {
					return err
				}
			}
			base := scenarios[0]

			engine, err := a.newEngine(cfg)
			if err != nil {
				return err
			}
			analyzer := calculation.NewSensitivityAnalyzer(engine)

			var analysis any
			switch analysisType {
			case "single":
				if len(params) != 1 {
					return fmt.Errorf("single analysis takes exactly one --parameter, got %d", len(params))
				}
				analysis, err = analyzer.AnalyzeSingleParameter(cmd.Context(), base, params[0])
			case "multi":
				analysis, err = analyzer.AnalyzeMultipleParameters(cmd.Context(), base, params)
			case "matrix":
				if len(params) != 2 {
					return fmt.Errorf("matrix analysis takes exactly two --parameter values, got %d", len(params))
				}
				analysis, err = analyzer.AnalyzeParameterMatrix(cmd.Context(), base, params[0], params[1])
			default:
				return fmt.Errorf("unknown analysis type %q (valid: single, multi, matrix)", analysisType)
			}
			if err != nil {
				return err
			}

			text, err := f.FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&parameters, "parameter", []string{domain.ParamIncome}, "Parameter to sweep (name or name:min-max:steps)")
	cmd.Flags().StringVar(&analysisType, "analysis-type", "single", "Analysis type (single, multi, matrix)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Use the named scenario from the input file")
	return cmd
}

func parseSensitivityParameters(specs []string) ([]domain.SensitivityParameter, error) {
	params := make([]domain.SensitivityParameter, 0, len(specs))
	for _, spec := range specs {
		p, err := parseParameterString(spec)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", spec, err)
		}
		params = append(params, p)
	}
	return params, nil
}

// parseParameterString reads name or name:min-max:steps
func parseParameterString(spec string) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	param, ok := domain.LookupParameter(parts[0])
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %s (valid: %s, %s)", parts[0], domain.ParamIncome, domain.ParamSavings)
	}
	if len(parts) == 1 {
		return param, nil
	}
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format (expected name:min-max:steps)")
	}

	minMax := strings.Split(parts[1], "-")
	if len(minMax) != 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", parts[1])
	}
	minValue, err := domain.ParseAmount(minMax[0])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %w", err)
	}
	maxValue, err := domain.ParseAmount(minMax[1])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %w", err)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %w", err)
	}

	param.MinValue = minValue
	param.MaxValue = maxValue
	param.Steps = steps
	return param, param.Validate()
}
