// Package transform holds named what-if edits of a scenario and the presets
// built from them.
package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// ScenarioTransform rewrites one or more inputs of a scenario. Scenarios are
// plain values, so Apply receives a copy and returns the edited copy.
type ScenarioTransform interface {
	Name() string
	Description() string
	Apply(s domain.Scenario) (domain.Scenario, error)
}

// Chain applies transforms left to right and stops at the first failure.
// The input scenario is never modified.
func Chain(base domain.Scenario, transforms ...ScenarioTransform) (domain.Scenario, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, err
		}
		current = next
	}
	return current, nil
}

// TransformError reports which transform rejected its parameters
type TransformError struct {
	TransformName string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s: %s: %v", e.TransformName, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s: %s", e.TransformName, e.Reason)
}

func (e *TransformError) Unwrap() error { return e.Err }

func invalid(t ScenarioTransform, reason string, err error) error {
	return &TransformError{TransformName: t.Name(), Reason: reason, Err: err}
}
