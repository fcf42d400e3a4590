package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

func createTestScenario() domain.Scenario {
	return domain.Scenario{
		Name:         "Test Scenario",
		Income:       decimal.NewFromInt(120000),
		FilingStatus: domain.FilingMarried,
		Savings:      decimal.NewFromInt(100),
		Scope:        domain.ScopeAll,
	}
}

func TestChain_Empty(t *testing.T) {
	base := createTestScenario()

	result, err := Chain(base)
	if err != nil {
		t.Fatalf("Expected no error for empty chain, got: %v", err)
	}
	if result != base {
		t.Errorf("Expected result to equal base, got %+v", result)
	}
}

func TestChain_InOrder(t *testing.T) {
	base := createTestScenario()

	result, err := Chain(base,
		SetSavings{Amount: decimal.NewFromInt(300)},
		SetScope{Scope: domain.ScopeTopFour},
		SetFilingStatus{Status: domain.FilingSingle},
		ScaleIncome{Factor: decimal.NewFromFloat(1.5)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Savings.Equal(decimal.NewFromInt(300)) {
		t.Errorf("savings = %s, want 300", result.Savings)
	}
	if result.Scope != domain.ScopeTopFour {
		t.Errorf("scope = %s, want topFour", result.Scope)
	}
	if result.FilingStatus != domain.FilingSingle {
		t.Errorf("status = %s, want single", result.FilingStatus)
	}
	if !result.Income.Equal(decimal.NewFromInt(180000)) {
		t.Errorf("income = %s, want 180000", result.Income)
	}

	if !base.Savings.Equal(decimal.NewFromInt(100)) || base.Scope != domain.ScopeAll {
		t.Error("base scenario was modified")
	}
}

func TestChain_LaterTransformSeesEarlierResult(t *testing.T) {
	result, err := Chain(createTestScenario(),
		SetIncome{Amount: decimal.NewFromInt(1000)},
		ScaleIncome{Factor: decimal.NewFromInt(3)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Income.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("income = %s, want 3000", result.Income)
	}
}

func TestChain_FailureReturnsBase(t *testing.T) {
	base := createTestScenario()

	result, err := Chain(base,
		SetScope{Scope: domain.ScopeTopFour},
		SetSavings{Amount: decimal.NewFromInt(-1)},
	)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, domain.ErrNegativeSavings) {
		t.Errorf("expected ErrNegativeSavings in chain, got %v", err)
	}
	var te *TransformError
	if !errors.As(err, &te) || te.TransformName != "set_savings" {
		t.Errorf("expected TransformError for set_savings, got %v", err)
	}
	if result != base {
		t.Error("partial result leaked out of a failed chain")
	}
}

func TestChain_NilTransform(t *testing.T) {
	if _, err := Chain(createTestScenario(), nil); err == nil {
		t.Error("expected error for nil transform")
	}
}

func TestSetIncome_ClampsNegative(t *testing.T) {
	result, err := SetIncome{Amount: decimal.NewFromInt(-5)}.Apply(createTestScenario())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Income.IsZero() {
		t.Errorf("income = %s, want 0", result.Income)
	}
}

func TestApply_RejectsUnknownEnums(t *testing.T) {
	base := createTestScenario()

	if _, err := (SetScope{Scope: "middle"}).Apply(base); !errors.Is(err, domain.ErrUnknownScope) {
		t.Errorf("expected ErrUnknownScope, got %v", err)
	}
	if _, err := (SetFilingStatus{Status: "widowed"}).Apply(base); !errors.Is(err, domain.ErrUnknownFilingStatus) {
		t.Errorf("expected ErrUnknownFilingStatus, got %v", err)
	}
	_, err := ScaleIncome{Factor: decimal.NewFromInt(-1)}.Apply(base)
	var te *TransformError
	if !errors.As(err, &te) || te.Err != nil {
		t.Errorf("expected bare TransformError for negative factor, got %v", err)
	}
}

func TestTransformError_Message(t *testing.T) {
	err := &TransformError{TransformName: "set_scope", Reason: `scope "x"`, Err: domain.ErrUnknownScope}
	want := `transform set_scope: scope "x": ` + domain.ErrUnknownScope.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
