package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// CompactFormatter stacks one small card per bracket, for narrow terminals
type CompactFormatter struct{}

func (CompactFormatter) Name() string { return "compact" }

func (CompactFormatter) Format(result *domain.Comparison) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no comparison to format")
	}
	buf := &bytes.Buffer{}
	writeHeader(buf, result)

	for _, r := range result.Rows {
		fmt.Fprintf(buf, "Bracket %d\n", r.BracketIndex)
		card(buf, "Range", FormatRange(r.RangeMin, r.RangeMax))
		card(buf, "Taxable", FormatCurrency(r.Taxable))
		card(buf, "Current Rate", FormatRate(r.CurrentRate))
		card(buf, "Current Tax", FormatCurrency(r.CurrentTax))
		card(buf, "Rate After Cut", FormatRatePointer(r.NewRate))
		card(buf, "Tax After Cut", FormatCurrency(r.NewTax))
		buf.WriteString("\n")
	}

	buf.WriteString("Total\n")
	card(buf, "Taxable", FormatCurrency(result.TotalTaxable))
	card(buf, "Current Tax", FormatCurrency(result.TotalCurrentTax))
	card(buf, "Tax After Cuts", FormatCurrency(result.TotalNewTax))
	card(buf, "Savings", FormatCurrency(result.Savings))
	return buf.Bytes(), nil
}

func card(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %-15s %s\n", label, value)
}
