package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/transform"
)

// ErrNotFound marks a preset or scenario name that is not registered
var ErrNotFound = errors.New("not found")

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	PresetRegistry    *transform.PresetRegistry
}

// NewCompareEngine creates a new comparison engine. A nil registry uses the built-in presets.
func NewCompareEngine(calcEngine *calculation.CalculationEngine, presets *transform.PresetRegistry) *CompareEngine {
	if presets == nil {
		presets = transform.CreateBuiltInPresets()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		PresetRegistry:    presets,
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Presets    []string // Preset names to apply to the base scenario
	Transforms []transform.ScenarioTransform
	ConfigPath string
}

// Compare runs the base scenario and each preset applied to it
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.Scenario,
	options CompareOptions,
) (*ComparisonSet, error) {

	if base.Name == "" {
		base.Name = "base"
	}
	baseCmp, err := ce.CalcEngine.Compare(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseCmp)

	alternatives := []ComparisonResult{}
	for _, presetName := range options.Presets {
		preset, ok := ce.PresetRegistry.Get(presetName)
		if !ok {
			return nil, fmt.Errorf("preset %s %w", presetName, ErrNotFound)
		}

		modified, err := transform.ApplyPreset(base, preset)
		if err != nil {
			return nil, err
		}

		alt, err := ce.run(ctx, modified, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate preset %s: %w", presetName, err)
		}
		alternatives = append(alternatives, alt)
	}

	if len(options.Transforms) > 0 {
		modified, err := transform.Chain(base, options.Transforms...)
		if err != nil {
			return nil, err
		}
		modified.Name = base.Name + "_custom"
		modified.Description = describeTransforms(options.Transforms)
		alt, err := ce.run(ctx, modified, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate custom scenario: %w", err)
		}
		alternatives = append(alternatives, alt)
	}

	return ce.newSet(base.Name, baseResult, alternatives, options.ConfigPath), nil
}

// CompareScenarios compares named scenarios from an input file against its base
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	scenarios := config.ResolveScenarios()
	base := scenarios[0]
	baseCmp, err := ce.CalcEngine.Compare(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseCmp)

	byName := make(map[string]domain.Scenario, len(scenarios))
	for _, s := range scenarios[1:] {
		byName[s.Name] = s
	}
	if len(alternativeScenarioNames) == 0 {
		for _, s := range scenarios[1:] {
			alternativeScenarioNames = append(alternativeScenarioNames, s.Name)
		}
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		s, ok := byName[altName]
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s %w", altName, ErrNotFound)
		}
		alt, err := ce.run(ctx, s, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, alt)
	}

	return ce.newSet(base.Name, baseResult, alternatives, ""), nil
}

func (ce *CompareEngine) run(ctx context.Context, s domain.Scenario, base ComparisonResult) (ComparisonResult, error) {
	cmp, err := ce.CalcEngine.Compare(ctx, s)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateComparison(ce.MetricsCalculator.CalculateMetrics(cmp), base), nil
}

func (ce *CompareEngine) newSet(baseName string, base ComparisonResult, alts []ComparisonResult, configPath string) *ComparisonSet {
	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &base,
		AlternativeResults: alts,
		ConfigPath:         configPath,
		Assumptions:        output.DefaultAssumptions,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func describeTransforms(transforms []transform.ScenarioTransform) string {
	desc := ""
	for i, t := range transforms {
		if i > 0 {
			desc += "; "
		}
		desc += t.Description()
	}
	return desc
}
