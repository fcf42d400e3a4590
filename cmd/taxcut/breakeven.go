package main

import (
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/breakeven"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/spf13/cobra"
)

func (a *app) breakEvenCmd() *cobra.Command {
	var (
		flags     scenarioFlags
		target    string
		goal      string
		maxIncome string
		format    string
		scenario  string
	)

	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Solve for the savings behind a target tax cut, or the income where scopes break even",
		Long: `Search for break-even points of the rate cut.

Targets:
  savings       aggregate savings needed for the filer to save --goal dollars
  scope_income  income at which a top-four cut saves as much as an all-bracket cut
  all           every target the inputs allow (default)

Examples:
  taxcut breakeven --income 103350 --status single --goal 1000 --target savings
  taxcut breakeven --status married --savings 111.3 --target scope_income
  taxcut breakeven --income 250000 --savings 111.3 --goal 2000 -f json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := breakeven.ParseTarget(target)
			if err != nil {
				return err
			}
			formatter, err := breakeven.NewFormatter(format)
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

			var constraints breakeven.Constraints
			if cmd.Flags().Changed("goal") {
				g, err := domain.ParseAmount(goal)
				if err != nil {
					return fmt.Errorf("--goal: %w", err)
				}
				constraints.TargetSavings = &g
			}
			if cmd.Flags().Changed("max-income") {
				m, err := domain.ParseAmount(maxIncome)
				if err != nil {
					return fmt.Errorf("--max-income: %w", err)
				}
				constraints.MaxIncome = &m
			}

			engine, err := a.newEngine(cfg)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(engine)
			out := cmd.OutOrStdout()

			if t == breakeven.OptimizeAll {
				multi, err := solver.OptimizeMulti(cmd.Context(), base, constraints)
				if err != nil {
					return err
				}
				text, err := formatter.FormatMulti(multi)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}

			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				Base:        base,
				Target:      t,
				Constraints: constraints,
			})
			if err != nil {
				return err
			}
			text, err := formatter.FormatResult(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&target, "target", string(breakeven.OptimizeAll), "What to solve for (savings, scope_income, all)")
	cmd.Flags().StringVar(&goal, "goal", "", "Personal tax saving to reach, in dollars")
	cmd.Flags().StringVar(&maxIncome, "max-income", "", "Upper bound of the income search")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Use the named scenario from the input file")
	return cmd
}
