package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxcut/internal/breakeven"
	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/compare"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/shopspring/decimal"
)

// Handlers holds the dependencies of every route
type Handlers struct {
	Engine        *calculation.CalculationEngine
	CompareEngine *compare.CompareEngine
	Solver        *breakeven.Solver
	Presets       *transform.PresetRegistry
	Metrics       *Metrics
}

// CompareRequest is the body of POST /api/v1/compare. Income may be a number
// or free-form text; text that does not parse counts as zero.
type CompareRequest struct {
	Income         json.RawMessage `json:"income"`
	FilingStatus   string          `json:"filingStatus"`
	Savings        decimal.Decimal `json:"savings"`
	ReductionScope string          `json:"reductionScope"`
}

// PresetCompareRequest is the body of POST /api/v1/compare/presets
type PresetCompareRequest struct {
	CompareRequest
	Presets []string `json:"presets"`
}

// BreakEvenRequest is the body of POST /api/v1/breakeven. Target defaults to "all".
type BreakEvenRequest struct {
	CompareRequest
	Target        string           `json:"target"`
	TargetSavings *decimal.Decimal `json:"targetSavings"`
	MaxIncome     *decimal.Decimal `json:"maxIncome"`
}

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "taxcut",
	})
}

// Ready handles GET /ready
func (h *Handlers) Ready(c *gin.Context) {
	if h.Engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": "taxcut",
		"taxYear": h.Engine.Tables.Year,
	})
}

// Compare handles POST /api/v1/compare. ?format=table|compact|csv|html returns text.
func (h *Handlers) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, badRequest(err))
		return
	}
	scenario, err := req.scenario()
	if err != nil {
		handleError(c, err)
		return
	}

	result, err := h.Engine.Compare(c.Request.Context(), scenario)
	if err != nil {
		handleError(c, err)
		return
	}
	h.Metrics.Comparisons.WithLabelValues(string(scenario.FilingStatus), string(scenario.Scope)).Inc()

	format := c.Query("format")
	if format == "" || format == "json" {
		c.JSON(http.StatusOK, result)
		return
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		handleError(c, badRequest(errors.New("unknown format "+format)))
		return
	}
	body, err := f.Format(result)
	if err != nil {
		handleError(c, err)
		return
	}
	contentType := "text/plain; charset=utf-8"
	switch f.Name() {
	case "csv":
		contentType = "text/csv; charset=utf-8"
	case "html":
		contentType = "text/html; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, body)
}

// ComparePresets handles POST /api/v1/compare/presets
func (h *Handlers) ComparePresets(c *gin.Context) {
	var req PresetCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, badRequest(err))
		return
	}
	scenario, err := req.scenario()
	if err != nil {
		handleError(c, err)
		return
	}
	if len(req.Presets) == 0 {
		req.Presets = h.Presets.List()
	}

	set, err := h.CompareEngine.Compare(c.Request.Context(), scenario, compare.CompareOptions{Presets: req.Presets})
	if err != nil {
		handleError(c, err)
		return
	}
	h.Metrics.Comparisons.WithLabelValues(string(scenario.FilingStatus), string(scenario.Scope)).Add(float64(1 + len(set.AlternativeResults)))
	c.JSON(http.StatusOK, set)
}

// BreakEven handles POST /api/v1/breakeven
func (h *Handlers) BreakEven(c *gin.Context) {
	var req BreakEvenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, badRequest(err))
		return
	}
	scenario, err := req.scenario()
	if err != nil {
		handleError(c, err)
		return
	}
	if req.Target == "" {
		req.Target = string(breakeven.OptimizeAll)
	}
	target, err := breakeven.ParseTarget(req.Target)
	if err != nil {
		handleError(c, err)
		return
	}
	constraints := breakeven.Constraints{TargetSavings: req.TargetSavings, MaxIncome: req.MaxIncome}

	if target == breakeven.OptimizeAll {
		multi, err := h.Solver.OptimizeMulti(c.Request.Context(), scenario, constraints)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, multi)
		return
	}

	result, err := h.Solver.Optimize(c.Request.Context(), breakeven.OptimizationRequest{
		Base:        scenario,
		Target:      target,
		Constraints: constraints,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Table handles GET /api/v1/tables/:status
func (h *Handlers) Table(c *gin.Context) {
	status, err := domain.ParseFilingStatus(c.Param("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	brackets, err := h.Engine.Tables.Lookup(status)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filingStatus": status,
		"taxYear":      h.Engine.Tables.Year,
		"brackets":     brackets,
	})
}

// ListPresets handles GET /api/v1/presets
func (h *Handlers) ListPresets(c *gin.Context) {
	presets := make([]gin.H, 0, h.Presets.Len())
	for _, p := range h.Presets.Presets() {
		presets = append(presets, gin.H{"name": p.Name, "description": p.Description})
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

// Assumptions handles GET /api/v1/assumptions
func (h *Handlers) Assumptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"assumptions": output.DefaultAssumptions})
}

func (r CompareRequest) scenario() (domain.Scenario, error) {
	s := domain.Scenario{
		Income:       parseIncomeField(r.Income),
		FilingStatus: domain.FilingMarried,
		Savings:      r.Savings,
		Scope:        domain.ScopeAll,
	}
	if r.FilingStatus != "" {
		status, err := domain.ParseFilingStatus(r.FilingStatus)
		if err != nil {
			return s, err
		}
		s.FilingStatus = status
	}
	if r.ReductionScope != "" {
		scope, err := domain.ParseReductionScope(r.ReductionScope)
		if err != nil {
			return s, err
		}
		s.Scope = scope
	}
	return s, nil
}

// parseIncomeField accepts a JSON number or string
func parseIncomeField(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = strings.TrimSpace(string(raw))
	}
	return domain.ParseIncome(text)
}

type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error { return requestError{err} }

// handleError maps domain errors onto HTTP status codes
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	status := http.StatusInternalServerError
	var reqErr requestError
	var solverErr *breakeven.BreakEvenError
	switch {
	case errors.As(err, &solverErr) && solverErr.Cause == nil,
		errors.As(err, &reqErr),
		errors.Is(err, domain.ErrUnknownFilingStatus),
		errors.Is(err, domain.ErrUnknownScope),
		errors.Is(err, domain.ErrNegativeSavings),
		errors.Is(err, domain.ErrNonFiniteAmount),
		errors.Is(err, compare.ErrNotFound):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
