package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX CUT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	if base := compSet.BaseResult; base != nil {
		sb.WriteString(fmt.Sprintf("Taxpayer: %s, %s\n", output.FormatCurrency(base.Income), base.FilingStatus.Label()))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Cut",
		numWidth, "Reduction",
		numWidth, "Current Tax",
		numWidth, "New Tax",
		numWidth, "Savings"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  New Tax:          %s%s\n",
				tf.deltaSymbol(alt.NewTaxDiffFromBase), output.FormatCurrency(alt.NewTaxDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Extra Savings:    %s%s\n",
				tf.deltaSymbol(alt.SavingsDiffFromBase), output.FormatCurrency(alt.SavingsDiffFromBase)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatCut(result.CutSavings, result.Scope.Valid() && result.Scope.Applies(0)),
		numWidth, output.FormatRate(result.RateReduction),
		numWidth, output.FormatCurrency(result.CurrentTax),
		numWidth, output.FormatCurrency(result.NewTax),
		numWidth, output.FormatCurrency(result.TaxSavings))
}

// formatCut shows the aggregate cut with a marker for top-four-only scope
func (tf *TableFormatter) formatCut(savings decimal.Decimal, allBrackets bool) string {
	s := output.FormatNumber(savings)
	if !allBrackets && savings.IsPositive() {
		s += " (top4)"
	}
	return s
}

// deltaSymbol returns a + for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.Round(0).IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf(" saves %s", output.FormatCurrency(compSet.BaseResult.TaxSavings)))
	}

	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(" | ")
		change := "="
		if alt.SavingsDiffFromBase.Round(0).IsPositive() {
			change = "+" + output.FormatCurrency(alt.SavingsDiffFromBase)
		} else if alt.SavingsDiffFromBase.Round(0).IsNegative() {
			change = output.FormatCurrency(alt.SavingsDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
