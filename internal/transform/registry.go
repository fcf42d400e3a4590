package transform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TransformFactory builds a transform from key=value parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// TransformRegistry maps transform names to factories so the CLI can accept
// edits such as "set_savings:amount=250".
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// NewTransformRegistry returns a registry holding every built-in transform.
func NewTransformRegistry() *TransformRegistry {
	r := &TransformRegistry{factories: map[string]TransformFactory{}}

	r.Register("set_savings", single("amount", func(v string) (ScenarioTransform, error) {
		amount, err := domain.ParseAmount(v)
		return SetSavings{Amount: amount}, err
	}))
	r.Register("set_income", single("amount", func(v string) (ScenarioTransform, error) {
		amount, err := domain.ParseAmount(v)
		return SetIncome{Amount: amount}, err
	}))
	r.Register("scale_income", single("factor", func(v string) (ScenarioTransform, error) {
		factor, err := decimal.NewFromString(v)
		return ScaleIncome{Factor: factor}, err
	}))
	r.Register("set_scope", single("scope", func(v string) (ScenarioTransform, error) {
		scope, err := domain.ParseReductionScope(v)
		return SetScope{Scope: scope}, err
	}))
	r.Register("set_filing_status", single("status", func(v string) (ScenarioTransform, error) {
		status, err := domain.ParseFilingStatus(v)
		return SetFilingStatus{Status: status}, err
	}))
	return r
}

// single adapts a one-parameter constructor into a factory.
func single(key string, build func(string) (ScenarioTransform, error)) TransformFactory {
	return func(params map[string]string) (ScenarioTransform, error) {
		v := params[key]
		if v == "" {
			return nil, fmt.Errorf("missing %q parameter", key)
		}
		t, err := build(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		return t, nil
	}
}

// Register adds or replaces a factory.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create builds the named transform.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	t, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// List returns the registered names in sorted order.
func (r *TransformRegistry) List() []string {
	names := lo.Keys(r.factories)
	slices.Sort(names)
	return names
}

// ParseTransformSpec parses "name:key=value[,key=value]" and builds the transform.
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("transform %q: expected name:key=value", spec)
	}

	params := map[string]string{}
	if rest = strings.TrimSpace(rest); rest != "" {
		for _, pair := range strings.Split(rest, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("transform %q: parameter %q is not key=value", spec, pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return r.Create(strings.TrimSpace(name), params)
}
