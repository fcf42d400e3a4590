package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// Formatter renders a single comparison
type Formatter interface {
	Name() string
	Format(result *domain.Comparison) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter
type FormatterFunc struct {
	ID string
	F  func(result *domain.Comparison) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.Comparison) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]Formatter{
	"table":   TableFormatter{},
	"compact": CompactFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"html":    HTMLFormatter{},
}

var formatAliases = map[string]string{
	"console": "table",
	"mobile":  "compact",
	"cards":   "compact",
}

// AvailableFormatterNames returns the canonical formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted alias names, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for name := range formatAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFormatterByName returns the formatter for a name or alias, or nil
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[key]; ok {
		key = canonical
	}
	return formatters[key]
}

// WriteFormatted renders result and writes it to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, result *domain.Comparison, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", fmt.Errorf("failed to format %s output: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("taxcut_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// Summary is the one-paragraph plain text result, used for clipboard copies and logs
func Summary(result *domain.Comparison) string {
	s := result.Scenario
	return fmt.Sprintf("Income %s (%s), %s cut to %s: current tax %s, new tax %s, savings %s",
		FormatCurrency(s.Income), strings.ToLower(s.FilingStatus.Label()),
		FormatRate(result.RateReduction), strings.ToLower(s.Scope.Label()),
		FormatCurrency(result.TotalCurrentTax), FormatCurrency(result.TotalNewTax), FormatCurrency(result.Savings))
}
