package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/tui/tuistyles"
)

var breakdownHeaders = []string{"#", "Range", "Taxable", "Rate", "Tax", "New Rate", "New Tax"}
var breakdownWidths = []int{3, 21, 12, 7, 11, 9, 11}

// BreakdownTable renders the paired per-bracket rows of a comparison
func BreakdownTable(c *domain.Comparison) string {
	if c == nil {
		return ""
	}
	if len(c.Rows) == 0 {
		return tuistyles.SubtitleStyle.Render("No taxable income.")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(breakdownLine(breakdownHeaders)))
	b.WriteString("\n")

	for _, row := range c.Rows {
		cells := []string{
			fmt.Sprintf("%d", row.BracketIndex),
			output.FormatRange(row.RangeMin, row.RangeMax),
			output.FormatCurrency(row.Taxable),
			output.FormatRate(row.CurrentRate),
			output.FormatCurrency(row.CurrentTax),
			output.FormatRatePointer(row.NewRate),
			output.FormatCurrency(row.NewTax),
		}
		style := tuistyles.TableCellStyle
		if row.NewRate != nil && !row.NewRate.Equal(row.CurrentRate) {
			style = tuistyles.TableHighlightStyle
		}
		b.WriteString(style.Render(breakdownLine(cells)))
		b.WriteString("\n")
	}

	total := []string{
		"", "Total",
		output.FormatCurrency(c.TotalTaxable), "",
		output.FormatCurrency(c.TotalCurrentTax), "",
		output.FormatCurrency(c.TotalNewTax),
	}
	b.WriteString(tuistyles.TableHeaderStyle.Render(breakdownLine(total)))
	return b.String()
}

func breakdownLine(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i <= 1 {
			parts[i] = fmt.Sprintf("%-*s", breakdownWidths[i], cell)
		} else {
			parts[i] = fmt.Sprintf("%*s", breakdownWidths[i], cell)
		}
	}
	return strings.Join(parts, " ")
}
