package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/output"
)

// Formatter renders solver results
type Formatter interface {
	FormatResult(result *OptimizationResult) (string, error)
	FormatMulti(result *MultiResult) (string, error)
}

// NewFormatter returns the formatter for "table" or "json"
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table", "console":
		return TableFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	}
	return nil, &BreakEvenError{Operation: "format", Message: "unsupported format " + name + " (valid: table, json)"}
}

// TableFormatter renders results as plain console text
type TableFormatter struct{}

func (TableFormatter) FormatResult(r *OptimizationResult) (string, error) {
	var b strings.Builder
	base := r.Request.Base

	b.WriteString(strings.Repeat("=", 60) + "\n")
	switch r.Request.Target {
	case OptimizeSavings:
		b.WriteString("SAVINGS NEEDED FOR A TARGET TAX CUT\n")
	case OptimizeScopeIncome:
		b.WriteString("TOP-FOUR VS ALL-BRACKET BREAK-EVEN INCOME\n")
	}
	b.WriteString(strings.Repeat("=", 60) + "\n")

	fmt.Fprintf(&b, "Filing status:   %s\n", base.FilingStatus.Label())
	switch r.Request.Target {
	case OptimizeSavings:
		fmt.Fprintf(&b, "Income:          %s\n", output.FormatCurrency(base.Income))
		fmt.Fprintf(&b, "Scope:           %s\n", base.Scope.Label())
		if t := r.Request.Constraints.TargetSavings; t != nil {
			fmt.Fprintf(&b, "Target saving:   %s\n", output.FormatCurrency(*t))
		}
	case OptimizeScopeIncome:
		fmt.Fprintf(&b, "Savings figure:  %s\n", output.FormatNumber(base.Savings))
	}
	b.WriteString("\n")

	status := "converged"
	if !r.Success {
		status = "not found"
	}
	fmt.Fprintf(&b, "Result:          %s (%d iterations)\n", status, r.Iterations)
	if r.OptimalSavings != nil {
		fmt.Fprintf(&b, "Savings figure:  %s\n", output.FormatNumber(*r.OptimalSavings))
	}
	if r.BreakEvenIncome != nil {
		fmt.Fprintf(&b, "Income:          %s\n", output.FormatCurrency(*r.BreakEvenIncome))
	}
	if c := r.Comparison; c != nil {
		fmt.Fprintf(&b, "Rate reduction:  %s points\n", c.RateReduction.Mul(hundred).StringFixed(2))
		fmt.Fprintf(&b, "Personal saving: %s (%s)\n", output.FormatCurrency(c.Savings), c.Scenario.Scope.Label())
	}
	if a := r.Alternate; a != nil {
		fmt.Fprintf(&b, "Personal saving: %s (%s)\n", output.FormatCurrency(a.Savings), a.Scenario.Scope.Label())
	}
	if r.ConvergenceInfo != "" {
		fmt.Fprintf(&b, "Note:            %s\n", r.ConvergenceInfo)
	}
	return b.String(), nil
}

func (f TableFormatter) FormatMulti(m *MultiResult) (string, error) {
	var b strings.Builder
	for i := range m.Results {
		text, err := f.FormatResult(&m.Results[i])
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	if len(m.Recommendations) > 0 {
		b.WriteString("RECOMMENDATIONS\n")
		for _, rec := range m.Recommendations {
			fmt.Fprintf(&b, "  • %s\n", rec)
		}
	}
	return b.String(), nil
}

// JSONFormatter renders results as indented JSON
type JSONFormatter struct{}

func (JSONFormatter) FormatResult(r *OptimizationResult) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

func (JSONFormatter) FormatMulti(m *MultiResult) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data), nil
}
