package output

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// TableFormatter renders the side-by-side bracket breakdown for a terminal
type TableFormatter struct{}

func (TableFormatter) Name() string { return "table" }

var tableHeaders = []string{"Bracket", "Range", "Taxable", "Rate (Current)", "Tax (Current)", "Rate (New)", "Tax (New)"}

func (TableFormatter) Format(result *domain.Comparison) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no comparison to format")
	}
	buf := &bytes.Buffer{}
	writeHeader(buf, result)

	rows := make([][]string, 0, len(result.Rows)+1)
	for _, r := range result.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.BracketIndex),
			FormatRange(r.RangeMin, r.RangeMax),
			FormatCurrency(r.Taxable),
			FormatRate(r.CurrentRate),
			FormatCurrency(r.CurrentTax),
			FormatRatePointer(r.NewRate),
			FormatCurrency(r.NewTax),
		})
	}
	total := []string{"Total", "", FormatCurrency(result.TotalTaxable), "", FormatCurrency(result.TotalCurrentTax), "", FormatCurrency(result.TotalNewTax)}

	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range append(rows, total) {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	writeRow(buf, tableHeaders, widths)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(buf, sep, widths)
	for _, row := range rows {
		writeRow(buf, row, widths)
	}
	writeRow(buf, sep, widths)
	writeRow(buf, total, widths)

	buf.WriteString("\n")
	writeTotals(buf, result)
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, result *domain.Comparison) {
	s := result.Scenario
	if s.Name != "" {
		fmt.Fprintf(buf, "Scenario: %s\n", s.Name)
	}
	fmt.Fprintf(buf, "Tax year %d | Income %s | %s | %s cut to %s (savings %s)\n\n",
		result.TaxYear, FormatCurrency(s.Income), s.FilingStatus.Label(),
		FormatRate(result.RateReduction), strings.ToLower(s.Scope.Label()), s.Savings.String())
}

func writeTotals(buf *bytes.Buffer, result *domain.Comparison) {
	fmt.Fprintf(buf, "Current Tax:  %s (effective %s)\n", FormatCurrency(result.TotalCurrentTax), FormatPercentage(result.EffectiveRateCurrent))
	fmt.Fprintf(buf, "New Tax:      %s (effective %s)\n", FormatCurrency(result.TotalNewTax), FormatPercentage(result.EffectiveRateNew))
	fmt.Fprintf(buf, "Your Savings: %s\n", FormatCurrency(result.Savings))
}

// writeRow left-aligns the first two columns and right-aligns the numbers
func writeRow(buf *bytes.Buffer, cells []string, widths []int) {
	for i, cell := range cells {
		pad := widths[i] - utf8.RuneCountInString(cell)
		if i < 2 {
			buf.WriteString(cell + strings.Repeat(" ", pad))
		} else {
			buf.WriteString(strings.Repeat(" ", pad) + cell)
		}
		if i < len(cells)-1 {
			buf.WriteString("  ")
		}
	}
	buf.WriteString("\n")
}
