package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/session"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh command tree isolated from the user's preferences
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prefs := filepath.Join(t.TempDir(), "config.toml")
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", prefs}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const inputYAML = `
income: 103350
filing_status: single
savings: 111.3
reduction_scope: all
scenarios:
  - name: top_four
    reduction_scope: topFour
  - name: no_cut
    savings: 0
`

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "taxcut", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"calculate", "compare", "breakeven", "sensitivity", "tables", "presets", "validate", "prompt", "serve", "tui", "config", "version"}

	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "command %s should be registered", name)
	}
}

func TestCalculate_Flags(t *testing.T) {
	out, err := run(t, "calculate", "--income", "103350", "--status", "single", "--savings", "111.3", "--scope", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Tax:  $17,651")
	assert.Contains(t, out, "Your Savings: $1,034")
}

func TestCalculate_JSON(t *testing.T) {
	out, err := run(t, "calculate", "-i", "$103,350", "-s", "single", "--savings", "111.3", "-f", "json")
	require.NoError(t, err)

	var result domain.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.TotalNewTax.Equal(decimal.RequireFromString("16617.5")))
}

func TestCalculate_UnparseableIncome(t *testing.T) {
	out, err := run(t, "calculate", "--income", "lots", "-f", "json")
	require.NoError(t, err)

	var result domain.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.TotalCurrentTax.IsZero())
	assert.Empty(t, result.Rows)
}

func TestCalculate_InputFile(t *testing.T) {
	path := writeFile(t, "input.yaml", inputYAML)

	out, err := run(t, "calculate", path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Scenario: "))

	out, err = run(t, "calculate", path, "--scenario", "top_four", "-f", "csv")
	require.NoError(t, err)
	assert.NotContains(t, out, "Scenario: ")

	_, err = run(t, "calculate", path, "--scenario", "missing")
	require.Error(t, err)
}

func TestCalculate_Errors(t *testing.T) {
	path := writeFile(t, "input.yaml", inputYAML)

	_, err := run(t, "calculate", path, "--income", "5")
	assert.True(t, errors.Is(err, errFlagsWithFile))

	_, err = run(t, "calculate", "--savings", "-5")
	assert.True(t, errors.Is(err, domain.ErrNegativeSavings))

	_, err = run(t, "calculate", "--status", "widowed")
	assert.True(t, errors.Is(err, domain.ErrUnknownFilingStatus))

	_, err = run(t, "calculate", "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCompare_Presets(t *testing.T) {
	out, err := run(t, "compare", "--income", "250000", "--with", "cut_100,top4_100", "-f", "json")
	require.NoError(t, err)

	var set map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	alts, ok := set["alternativeResults"].([]interface{})
	require.True(t, ok)
	assert.Len(t, alts, 2)
}

func TestCompare_TransformsAndFile(t *testing.T) {
	out, err := run(t, "compare", "--income", "90000", "--transform", "set_savings:amount=150", "--transform", "set_scope:scope=topFour")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	path := writeFile(t, "input.yaml", inputYAML)
	out, err = run(t, "compare", path, "--scenarios", "top_four", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "top_four")
	assert.NotContains(t, out, "no_cut")
}

func TestCompare_Errors(t *testing.T) {
	_, err := run(t, "compare", "--income", "1000")
	require.Error(t, err)

	_, err = run(t, "compare", "--income", "1000", "--with", "bogus")
	require.Error(t, err)

	_, err = run(t, "compare", "--income", "1000", "--with", "cut_100", "-f", "xml")
	require.Error(t, err)

	out, err := run(t, "compare", "--list-presets")
	require.NoError(t, err)
	assert.Contains(t, out, "top4_500")
}

func TestBreakEven(t *testing.T) {
	out, err := run(t, "breakeven", "--income", "103350", "--status", "single", "--scope", "all", "--target", "savings", "--goal", "1033.5")
	require.NoError(t, err)
	assert.Contains(t, out, "SAVINGS NEEDED FOR A TARGET TAX CUT")
	assert.Contains(t, out, "converged")

	out, err = run(t, "breakeven", "--status", "single", "--savings", "111.3", "--target", "income")
	require.NoError(t, err)
	assert.Contains(t, out, "$139,17")

	out, err = run(t, "breakeven", "--income", "250000", "--status", "single", "--savings", "111.3", "--goal", "2000", "-f", "json")
	require.NoError(t, err)
	var multi map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &multi))
	assert.Len(t, multi["results"], 3)
}

func TestBreakEven_Errors(t *testing.T) {
	_, err := run(t, "breakeven", "--target", "bogus")
	require.Error(t, err)

	_, err = run(t, "breakeven", "--goal", "abc", "--target", "savings")
	require.Error(t, err)

	_, err = run(t, "breakeven", "--savings", "100", "-f", "xml")
	require.Error(t, err)

	_, err = run(t, "breakeven", "--savings", "0", "--target", "scope_income")
	require.Error(t, err)
}

func TestSensitivity(t *testing.T) {
	out, err := run(t, "sensitivity", "--income", "103350", "--status", "single", "--savings", "111.3", "--scope", "all",
		"--parameter", "income:0-200000:5")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY ANALYSIS")
	assert.Contains(t, out, "$2,000")

	out, err = run(t, "sensitivity", "--savings", "111.3", "--parameter", "income:50000-100000:2",
		"--parameter", "savings:0-100:2", "--analysis-type", "matrix", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "parameter_1_name,parameter_1_value")

	out, err = run(t, "sensitivity", "--parameter", "income", "--parameter", "savings", "--analysis-type", "multi", "-f", "json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "multi", decoded["analysisType"])
}

func TestSensitivity_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"sensitivity", "--parameter", "inflation_rate"},
		{"sensitivity", "--parameter", "income:1-2"},
		{"sensitivity", "--parameter", "income:5-1:3"},
		{"sensitivity", "--parameter", "income:1-5:x"},
		{"sensitivity", "--parameter", "income", "--analysis-type", "matrix"},
		{"sensitivity", "--parameter", "income", "--parameter", "savings"},
		{"sensitivity", "--analysis-type", "cube"},
		{"sensitivity", "-f", "html"},
	} {
		_, err := run(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestTablesAndPresets(t *testing.T) {
	out, err := run(t, "tables", "single")
	require.NoError(t, err)
	assert.Contains(t, out, "626,350 - ∞")
	assert.Equal(t, 4, strings.Count(out, "(top four)"))

	out, err = run(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "751,600 - ∞")

	_, err = run(t, "tables", "joint")
	require.Error(t, err)

	out, err = run(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "cut_100")
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "input.yaml", inputYAML)
	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (3 scenarios)")

	bad := writeFile(t, "bad.yaml", "income: 1000\nreduction_scope: middle\n")
	_, err = run(t, "validate", bad)
	require.Error(t, err)

	out, err = run(t, "validate", "--preferences")
	require.NoError(t, err)
	assert.Contains(t, out, "Preferences file")
}

func TestConfigInitAndShow(t *testing.T) {
	prefs := filepath.Join(t.TempDir(), "taxcut", "config.toml")

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", prefs, "config", "init"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, prefs)

	cmd = newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", prefs, "config", "init"})
	require.Error(t, cmd.Execute(), "refuses to overwrite without --force")

	buf.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", prefs, "config", "show"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Status: loaded")
	assert.Contains(t, buf.String(), "Filing status:   married")
}

func TestPreferencesFeedCalculate(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "config.toml")
	prefs := config.DefaultPreferences()
	prefs.General.FilingStatus = "single"
	prefs.General.Income = 103350
	prefs.General.Savings = 111.3
	prefs.Output.Format = "json"
	prefs.Presets = []config.PresetPreference{{Name: "my_cut", Savings: 50, Scope: "topFour"}}
	require.NoError(t, config.SaveTo(prefsPath, prefs))

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", prefsPath, "calculate"})
	require.NoError(t, cmd.Execute())

	var result domain.Comparison
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.True(t, result.Savings.Equal(decimal.RequireFromString("1033.5")))

	buf.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--config", prefsPath, "presets"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "From preferences: my_cut")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "taxcut dev")
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "version")
	require.Error(t, err)

	var buf bytes.Buffer
	l, err := newLogger(&buf, "warn", true)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	engineLogger{entry: l.WithField("module", "calculation")}.Debugf("bracket %d", 3)
	assert.Contains(t, buf.String(), "bracket 3")
	assert.Contains(t, buf.String(), "module=calculation")
}

func TestRunPrompt(t *testing.T) {
	state := session.New(domain.Scenario{})
	var out bytes.Buffer

	answers := []promptValues{
		{Income: "103,350", Status: domain.FilingSingle, Savings: "111.3", Scope: domain.ScopeAll, Again: true},
		{Income: "103,350", Status: domain.FilingSingle, Savings: "0", Scope: domain.ScopeTopFour},
	}
	calls := 0
	ask := func(v *promptValues) error {
		*v = answers[calls]
		calls++
		return nil
	}

	require.NoError(t, runPrompt(state, &out, output.GetFormatterByName("table"), ask))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, strings.Count(out.String(), "Current Tax:"), "one result per answer")
	assert.Contains(t, out.String(), "Your Savings: $1,034")
	assert.Equal(t, domain.ScopeTopFour, state.Scenario().Scope)
}

func TestRunPrompt_InvalidSavings(t *testing.T) {
	state := session.New(domain.Scenario{})
	err := runPrompt(state, &bytes.Buffer{}, output.GetFormatterByName("table"), func(v *promptValues) error {
		v.Savings = "abc"
		return nil
	})
	require.Error(t, err)
	assert.Error(t, validateSavings("-1"))
	assert.NoError(t, validateSavings("$1,000"))
}
