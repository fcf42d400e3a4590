package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Income",
		"Filing Status",
		"Cut Savings",
		"Scope",
		"Rate Reduction",
		"Current Tax",
		"New Tax",
		"Tax Savings",
		"New Tax Diff from Base",
		"Savings Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Income.StringFixed(2),
		string(result.FilingStatus),
		result.CutSavings.String(),
		string(result.Scope),
		result.RateReduction.StringFixed(6),
		result.CurrentTax.StringFixed(2),
		result.NewTax.StringFixed(2),
		result.TaxSavings.StringFixed(2),
		result.NewTaxDiffFromBase.StringFixed(2),
		result.SavingsDiffFromBase.StringFixed(2),
	}
}
