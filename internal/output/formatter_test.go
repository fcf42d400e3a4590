package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestComparison(t *testing.T) *domain.Comparison {
	t.Helper()
	result, err := calculation.NewCalculationEngine().Compare(context.Background(), domain.Scenario{
		Name:         "reference",
		Income:       decimal.NewFromInt(103350),
		FilingStatus: domain.FilingSingle,
		Savings:      decimal.RequireFromString("111.3"),
		Scope:        domain.ScopeAll,
	})
	require.NoError(t, err)
	return result
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(result *domain.Comparison) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := formatter.Format(buildTestComparison(t))
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, "test output", string(out))
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(*domain.Comparison) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestComparison(t), "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "taxcut_report_")
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(*domain.Comparison) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestComparison(t), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, []string{"compact", "csv", "html", "json", "table"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "console")

	assert.Equal(t, "table", GetFormatterByName("console").Name())
	assert.Equal(t, "compact", GetFormatterByName(" Mobile ").Name())
	assert.Equal(t, "html", GetFormatterByName("HTML").Name())
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestTableFormatter(t *testing.T) {
	out, err := TableFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)
	text := string(out)

	for _, want := range []string{
		"Scenario: reference",
		"Rate (Current)",
		"48,475 - 103,350",
		"$17,651",
		"$16,618",
		"Your Savings: $1,034",
		"21%",
	} {
		assert.Contains(t, text, want)
	}

	_, err = TableFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestCompactFormatter(t *testing.T) {
	out, err := CompactFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)
	text := string(out)

	assert.Equal(t, 3, strings.Count(text, "Bracket "))
	assert.Contains(t, text, "Rate After Cut")
	assert.Contains(t, text, "Tax After Cuts")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Bracket", records[0][0])
	assert.Equal(t, "0.1", records[1][4])
	assert.Equal(t, "0.09", records[1][6])
	assert.Equal(t, []string{"Total", "", "", "103350.00", "", "17651.00", "", "16617.50"}, records[4])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)

	var decoded domain.Comparison
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, decoded.Savings.Equal(decimal.RequireFromString("1033.5")))
	assert.Len(t, decoded.Rows, 3)
	assert.Equal(t, domain.FilingSingle, decoded.Scenario.FilingStatus)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "<!DOCTYPE html>"))
	assert.Contains(t, text, "Tax Cut Comparison - reference")
	assert.Contains(t, text, "<td>48,475 - 103,350</td>")
	assert.Contains(t, text, "$17,651")
	assert.Contains(t, text, "$1,034")
	assert.Contains(t, text, DefaultAssumptions[0])

	_, err = HTMLFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	s := Summary(buildTestComparison(t))
	assert.Equal(t, "Income $103,350 (single), 1% cut to all brackets: current tax $17,651, new tax $16,618, savings $1,034", s)
}
