package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// CSVFormatter emits one row per bracket plus a total row, with unrounded amounts
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.Comparison) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no comparison to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Bracket", "RangeMin", "RangeMax", "Taxable", "CurrentRate", "CurrentTax", "NewRate", "NewTax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range result.Rows {
		row := []string{
			strconv.Itoa(r.BracketIndex),
			r.RangeMin.StringFixed(2),
			"",
			r.Taxable.StringFixed(2),
			r.CurrentRate.String(),
			r.CurrentTax.StringFixed(2),
			"",
			r.NewTax.StringFixed(2),
		}
		if r.RangeMax != nil {
			row[2] = r.RangeMax.StringFixed(2)
		}
		if r.NewRate != nil {
			row[6] = r.NewRate.String()
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	total := []string{"Total", "", "", result.TotalTaxable.StringFixed(2), "", result.TotalCurrentTax.StringFixed(2), "", result.TotalNewTax.StringFixed(2)}
	if err := w.Write(total); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
