package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

// Preset represents a named collection of transforms, usually a quick tax cut
type Preset struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewCutPreset builds the common savings-plus-scope preset. An empty scope
// leaves the scenario's scope alone.
func NewCutPreset(name string, savings decimal.Decimal, scope domain.ReductionScope) Preset {
	transforms := []ScenarioTransform{SetSavings{Amount: savings}}
	desc := fmt.Sprintf("Cut worth %s", savings.String())
	if scope != "" {
		transforms = append(transforms, SetScope{Scope: scope})
		desc += " across " + strings.ToLower(scope.Label())
	}
	return Preset{Name: name, Description: desc, Transforms: transforms}
}

// PresetFromPreference converts a user-configured preset
func PresetFromPreference(name string, savings float64, scope string) (Preset, error) {
	amount, err := domain.DecimalFromFloat(savings)
	if err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", name, err)
	}
	if amount.IsNegative() {
		return Preset{}, fmt.Errorf("preset %s: %w", name, domain.ErrNegativeSavings)
	}
	var s domain.ReductionScope
	if scope != "" {
		if s, err = domain.ParseReductionScope(scope); err != nil {
			return Preset{}, fmt.Errorf("preset %s: %w", name, err)
		}
	}
	return NewCutPreset(name, amount, s), nil
}

// PresetRegistry manages named presets, remembering registration order
type PresetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry creates an empty preset registry
func NewPresetRegistry() *PresetRegistry {
	return &PresetRegistry{
		presets: make(map[string]Preset),
	}
}

// Register adds a preset, replacing any existing preset of the same name
func (pr *PresetRegistry) Register(p Preset) {
	key := strings.ToLower(p.Name)
	if _, exists := pr.presets[key]; !exists {
		pr.order = append(pr.order, key)
	}
	pr.presets[key] = p
}

// Get retrieves a preset by name (case-insensitive)
func (pr *PresetRegistry) Get(name string) (Preset, bool) {
	p, ok := pr.presets[strings.ToLower(name)]
	return p, ok
}

// List returns all registered preset names in registration order
func (pr *PresetRegistry) List() []string {
	out := make([]string, len(pr.order))
	copy(out, pr.order)
	return out
}

// Presets returns all registered presets in registration order
func (pr *PresetRegistry) Presets() []Preset {
	out := make([]Preset, 0, len(pr.order))
	for _, key := range pr.order {
		out = append(out, pr.presets[key])
	}
	return out
}

// Len returns the number of registered presets
func (pr *PresetRegistry) Len() int {
	return len(pr.order)
}

// BuiltInCutAmounts are the quick tax-cut savings figures
var BuiltInCutAmounts = []int64{100, 200, 300, 500}

// CreateBuiltInPresets creates a preset registry with the quick tax cuts
func CreateBuiltInPresets() *PresetRegistry {
	registry := NewPresetRegistry()

	registry.Register(Preset{
		Name:        "no_cut",
		Description: "Current law, no rate reduction",
		Transforms:  []ScenarioTransform{SetSavings{Amount: decimal.Zero}},
	})

	for _, amount := range BuiltInCutAmounts {
		registry.Register(NewCutPreset(fmt.Sprintf("cut_%d", amount), decimal.NewFromInt(amount), domain.ScopeAll))
	}
	for _, amount := range BuiltInCutAmounts {
		registry.Register(NewCutPreset(fmt.Sprintf("top4_%d", amount), decimal.NewFromInt(amount), domain.ScopeTopFour))
	}

	return registry
}

// ApplyPreset applies a preset to a base scenario and names the result after it
func ApplyPreset(base domain.Scenario, preset Preset) (domain.Scenario, error) {
	result, err := Chain(base, preset.Transforms...)
	if err != nil {
		return base, fmt.Errorf("preset %s: %w", preset.Name, err)
	}
	result.Name = preset.Name
	if preset.Description != "" {
		result.Description = preset.Description
	}
	return result, nil
}

// ParsePresetList parses a comma-separated list of preset names
func ParsePresetList(presetList string) []string {
	if presetList == "" {
		return nil
	}

	parts := strings.Split(presetList, ",")
	presets := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			presets = append(presets, trimmed)
		}
	}
	return presets
}

// GetPresetHelp returns formatted help text for all presets
func GetPresetHelp(registry *PresetRegistry) string {
	if registry.Len() == 0 {
		return "No presets registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Presets:\n\n")

	categories := map[string][]Preset{}
	for _, p := range registry.Presets() {
		switch {
		case strings.HasPrefix(p.Name, "cut_"):
			categories["All Brackets"] = append(categories["All Brackets"], p)
		case strings.HasPrefix(p.Name, "top4_"):
			categories["Top Four Brackets"] = append(categories["Top Four Brackets"], p)
		default:
			categories["Other"] = append(categories["Other"], p)
		}
	}

	for _, category := range []string{"All Brackets", "Top Four Brackets", "Other"} {
		presets := categories[category]
		if len(presets) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, p := range presets {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", p.Name, p.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  taxcut compare --income 120000 --with cut_100,top4_100\n")
	sb.WriteString("  taxcut compare input.yaml --with no_cut,cut_500\n")

	return sb.String()
}
