package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with the summary cards and
// bracket breakdown
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"rate":  FormatRate,
	"ratep": FormatRatePointer,
	"span":  FormatRange,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.Comparison) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no comparison to format")
	}
	var buf bytes.Buffer
	data := struct {
		*domain.Comparison
		Assumptions []string
	}{result, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
