package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return NewServer(DefaultConfig(), calculation.NewCalculationEngine(), nil, nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "taxcut", response["service"])
}

func TestReady(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ready", response["status"])
	assert.EqualValues(t, calculation.DefaultTaxYear, response["taxYear"])
}

func TestCompare_JSON(t *testing.T) {
	s := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/compare",
		`{"income": 103350, "filingStatus": "single", "savings": 111.3, "reductionScope": "all"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.TotalCurrentTax.Equal(decimal.RequireFromString("17651")), result.TotalCurrentTax.String())
	assert.True(t, result.TotalNewTax.Equal(decimal.RequireFromString("16617.5")), result.TotalNewTax.String())
	assert.True(t, result.Savings.Equal(decimal.RequireFromString("1033.5")), result.Savings.String())
	assert.Len(t, result.Rows, 3)
}

func TestCompare_IncomeAsText(t *testing.T) {
	s := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/compare",
		`{"income": "103,350", "filingStatus": "single", "savings": "0"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.TotalTaxable.Equal(decimal.NewFromInt(103350)))
	assert.True(t, result.Savings.IsZero())
}

func TestCompare_UnparseableIncomeIsZero(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/api/v1/compare", `{"income": "abc", "savings": 100}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.Comparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Empty(t, result.Rows)
	assert.True(t, result.TotalCurrentTax.IsZero())
	assert.Equal(t, domain.FilingMarried, result.Scenario.FilingStatus)
}

func TestCompare_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"income": `},
		{"unknown status", `{"income": 1000, "filingStatus": "widowed"}`},
		{"unknown scope", `{"income": 1000, "reductionScope": "bottom"}`},
		{"negative savings", `{"income": 1000, "savings": -5}`},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/v1/compare", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response["error"])
		})
	}
}

func TestCompare_TextFormat(t *testing.T) {
	s := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/compare?format=csv", `{"income": 50000, "filingStatus": "single", "savings": 100}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.NotEmpty(t, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/v1/compare?format=bogus", `{"income": 50000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComparePresets(t *testing.T) {
	s := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/compare/presets",
		`{"income": 250000, "filingStatus": "married", "presets": ["cut_100", "top4_100"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	alts, ok := response["alternativeResults"].([]interface{})
	require.True(t, ok)
	assert.Len(t, alts, 2)
}

func TestComparePresets_UnknownPreset(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/api/v1/compare/presets",
		`{"income": 250000, "presets": ["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "preset nope not found")
}

func TestBreakEven(t *testing.T) {
	s := newTestServer()

	w := do(t, s, http.MethodPost, "/api/v1/breakeven",
		`{"income": 103350, "filingStatus": "single", "reductionScope": "all", "target": "savings", "targetSavings": 1033.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	optimal, err := decimal.NewFromString(result["optimalSavings"].(string))
	require.NoError(t, err)
	assert.InDelta(t, 111.3, optimal.InexactFloat64(), 0.2)

	w = do(t, s, http.MethodPost, "/api/v1/breakeven",
		`{"income": 250000, "filingStatus": "single", "savings": 111.3, "targetSavings": 2000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var multi map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &multi))
	assert.Len(t, multi["results"], 3)
}

func TestBreakEven_Errors(t *testing.T) {
	s := newTestServer()

	w := do(t, s, http.MethodPost, "/api/v1/breakeven", `{"target": "bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/breakeven", `{"income": 1000, "target": "scope_income"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/breakeven", `{"income": 1000, "target": "savings", "targetSavings": -5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTable(t *testing.T) {
	s := newTestServer()
	w := do(t, s, http.MethodGet, "/api/v1/tables/single", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		FilingStatus string           `json:"filingStatus"`
		Brackets     []domain.Bracket `json:"brackets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "single", response.FilingStatus)
	require.Len(t, response.Brackets, 7)
	assert.Nil(t, response.Brackets[6].Max)

	w = do(t, s, http.MethodGet, "/api/v1/tables/head_of_household", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPresets(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/api/v1/presets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cut_100")
	assert.Contains(t, w.Body.String(), "top4_500")
}

func TestMetrics(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodPost, "/api/v1/compare", `{"income": 50000, "filingStatus": "single", "savings": 100, "reductionScope": "topFour"}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `taxcut_comparisons_total{filing_status="single",scope="topFour"} 1`), body)
	assert.Contains(t, body, "taxcut_http_request_duration_seconds")
}
