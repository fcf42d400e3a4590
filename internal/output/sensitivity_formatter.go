package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis any) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "table" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatSingleAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

// formatParameterValue renders a sweep value in its unit
func formatParameterValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	if param.Unit == "dollars" {
		return FormatCurrency(v)
	}
	return FormatNumber(v)
}

func (scf SensitivityConsoleFormatter) formatSingleAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	base := analysis.Base
	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS\n")
	fmt.Fprintf(buf, "=================================================================\n")
	fmt.Fprintf(buf, "Base: %s, %s, savings %s, %s\n",
		FormatCurrency(base.Income), base.FilingStatus.Label(), FormatNumber(base.Savings), base.Scope.Label())

	for _, param := range analysis.Parameters {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "%s: %s to %s (%d steps)\n", strings.ToUpper(param.Name),
			formatParameterValue(param, param.MinValue), formatParameterValue(param, param.MaxValue), param.Steps)
		if param.Description != "" {
			fmt.Fprintf(buf, "Description: %s\n", param.Description)
		}

		fmt.Fprintf(buf, "%-16s %-14s %-14s %-12s %-12s %-10s\n",
			param.Name, "Current Tax", "New Tax", "You Save", "Change", "Eff. Rate")
		fmt.Fprintln(buf, strings.Repeat("-", 82))

		for _, result := range analysis.Results {
			value, ok := result.ParameterValues[param.Name]
			if !ok {
				continue
			}
			label := formatParameterValue(param, value)
			if value.Equal(param.BaseValue) {
				label += " ←"
			}
			m := result.KeyMetrics
			fmt.Fprintf(buf, "%-16s %-14s %-14s %-12s %-12s %-10s\n",
				label,
				FormatCurrency(m.CurrentTax),
				FormatCurrency(m.NewTax),
				FormatCurrency(m.Savings),
				signedCurrency(m.SavingsChange),
				FormatRate(m.EffectiveRateNew.Round(3)))
		}
	}

	fmt.Fprintln(buf)
	if analysis.Summary.MostSensitiveParameter != "" {
		fmt.Fprintf(buf, "MOST SENSITIVE: %s\n", analysis.Summary.MostSensitiveParameter)
		fmt.Fprintln(buf)
	}

	fmt.Fprintln(buf, "SUMMARY:")
	for _, rec := range analysis.Summary.Recommendations {
		fmt.Fprintf(buf, "  • %s\n", rec)
	}

	return buf.String(), nil
}

func signedCurrency(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatCurrency(d)
	}
	return FormatCurrency(d)
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.MatrixResults) == 0 || len(matrix.MatrixResults[0]) == 0 {
		return "", fmt.Errorf("empty sensitivity matrix")
	}
	p1, p2 := matrix.Parameter1, matrix.Parameter2

	fmt.Fprintf(buf, "SENSITIVITY MATRIX: PERSONAL SAVING\n")
	fmt.Fprintf(buf, "=================================================================\n")
	fmt.Fprintf(buf, "Rows:    %s (%s to %s)\n", p1.Name, formatParameterValue(p1, p1.MinValue), formatParameterValue(p1, p1.MaxValue))
	fmt.Fprintf(buf, "Columns: %s (%s to %s)\n", p2.Name, formatParameterValue(p2, p2.MinValue), formatParameterValue(p2, p2.MaxValue))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-14s", p1.Name+" \\ "+p2.Name)
	for _, r := range matrix.MatrixResults[0] {
		fmt.Fprintf(buf, " %-10s", formatParameterValue(p2, r.ParameterValues[p2.Name]))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("-", 14+11*len(matrix.MatrixResults[0])))

	for _, row := range matrix.MatrixResults {
		fmt.Fprintf(buf, "%-14s", formatParameterValue(p1, row[0].ParameterValues[p1.Name]))
		for _, r := range row {
			fmt.Fprintf(buf, " %-10s", FormatCurrency(r.KeyMetrics.Savings))
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "SUMMARY:")
	for _, rec := range matrix.Summary.Recommendations {
		fmt.Fprintf(buf, "  • %s\n", rec)
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

var sensitivityCSVMetrics = []string{"current_tax", "new_tax", "savings", "savings_change", "effective_rate_new"}

func metricColumns(m domain.SensitivityMetrics) []string {
	return []string{
		m.CurrentTax.StringFixed(2),
		m.NewTax.StringFixed(2),
		m.Savings.StringFixed(2),
		m.SavingsChange.StringFixed(2),
		m.EffectiveRateNew.StringFixed(6),
	}
}

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		if err := w.Write(append([]string{"parameter_name", "parameter_value"}, sensitivityCSVMetrics...)); err != nil {
			return "", err
		}
		for _, param := range a.Parameters {
			for _, result := range a.Results {
				value, ok := result.ParameterValues[param.Name]
				if !ok {
					continue
				}
				if err := w.Write(append([]string{param.Name, value.String()}, metricColumns(result.KeyMetrics)...)); err != nil {
					return "", err
				}
			}
		}
	case *domain.SensitivityMatrix:
		header := append([]string{"parameter_1_name", "parameter_1_value", "parameter_2_name", "parameter_2_value"}, sensitivityCSVMetrics...)
		if err := w.Write(header); err != nil {
			return "", err
		}
		for _, row := range a.MatrixResults {
			for _, result := range row {
				record := []string{
					a.Parameter1.Name, result.ParameterValues[a.Parameter1.Name].String(),
					a.Parameter2.Name, result.ParameterValues[a.Parameter2.Name].String(),
				}
				if err := w.Write(append(record, metricColumns(result.KeyMetrics)...)); err != nil {
					return "", err
				}
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sensitivity analysis: %w", err)
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format
// name, or nil when the name is not supported
func NewSensitivityFormatter(format string) SensitivityFormatter {
	key := strings.ToLower(strings.TrimSpace(format))
	if canonical, ok := formatAliases[key]; ok {
		key = canonical
	}
	switch key {
	case "", "table":
		return SensitivityConsoleFormatter{}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return nil
	}
}
