package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

// Preferences holds per-user defaults for the interactive surfaces
type Preferences struct {
	General GeneralPreferences `toml:"general"`
	Output  OutputPreferences  `toml:"output"`
	Presets []PresetPreference `toml:"presets,omitempty"`
}

// GeneralPreferences holds the starting calculator inputs
type GeneralPreferences struct {
	FilingStatus string  `toml:"filing_status"`
	Scope        string  `toml:"reduction_scope"`
	Income       float64 `toml:"income"`
	Savings      float64 `toml:"savings"`
}

// OutputPreferences holds rendering defaults
type OutputPreferences struct {
	Format string `toml:"format"`
}

// PresetPreference is a user-defined quick tax cut
type PresetPreference struct {
	Name    string  `toml:"name"`
	Savings float64 `toml:"savings"`
	Scope   string  `toml:"reduction_scope,omitempty"`
}

// DefaultPreferences returns the default preferences
func DefaultPreferences() Preferences {
	return Preferences{
		General: GeneralPreferences{
			FilingStatus: string(domain.FilingMarried),
			Scope:        string(domain.ScopeAll),
			Income:       100000,
			Savings:      200,
		},
		Output: OutputPreferences{Format: "table"},
	}
}

// Dir returns the XDG-compliant config directory
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taxcut")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "taxcut")
}

// Path returns the full path to the preferences file
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Exists reports whether a preferences file exists on disk
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the preferences file, returning defaults if it doesn't exist
func Load() (Preferences, error) {
	return LoadFrom(Path())
}

// LoadFrom reads preferences from path, returning defaults if it doesn't exist
func LoadFrom(path string) (Preferences, error) {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("reading preferences: %w", err)
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("parsing preferences: %w", err)
	}
	if err := prefs.Validate(); err != nil {
		return prefs, fmt.Errorf("invalid preferences in %s: %w", path, err)
	}

	return prefs, nil
}

// Save writes preferences to the default path
func Save(prefs Preferences) error {
	return SaveTo(Path(), prefs)
}

// SaveTo writes preferences to path, creating its directory
func SaveTo(path string, prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(prefs)
}

// Validate checks enum fields and amounts
func (p Preferences) Validate() error {
	if _, err := domain.ParseFilingStatus(p.General.FilingStatus); err != nil {
		return err
	}
	if _, err := domain.ParseReductionScope(p.General.Scope); err != nil {
		return err
	}
	if _, err := domain.DecimalFromFloat(p.General.Income); err != nil {
		return fmt.Errorf("income: %w", err)
	}
	if _, err := domain.DecimalFromFloat(p.General.Savings); err != nil {
		return fmt.Errorf("savings: %w", err)
	}
	if p.General.Savings < 0 {
		return fmt.Errorf("savings: %w", domain.ErrNegativeSavings)
	}
	for _, preset := range p.Presets {
		if preset.Name == "" {
			return fmt.Errorf("preset name is required")
		}
		if preset.Savings < 0 {
			return fmt.Errorf("preset %s: %w", preset.Name, domain.ErrNegativeSavings)
		}
		if preset.Scope != "" {
			if _, err := domain.ParseReductionScope(preset.Scope); err != nil {
				return fmt.Errorf("preset %s: %w", preset.Name, err)
			}
		}
	}
	return nil
}

// Scenario converts the general preferences into calculator inputs
func (p Preferences) Scenario() (domain.Scenario, error) {
	status, err := domain.ParseFilingStatus(p.General.FilingStatus)
	if err != nil {
		return domain.Scenario{}, err
	}
	scope, err := domain.ParseReductionScope(p.General.Scope)
	if err != nil {
		return domain.Scenario{}, err
	}
	income, err := domain.DecimalFromFloat(p.General.Income)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("income: %w", err)
	}
	savings, err := domain.DecimalFromFloat(p.General.Savings)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("savings: %w", err)
	}
	if income.IsNegative() {
		income = decimal.Zero
	}
	return domain.Scenario{
		Name:         "preferences",
		Income:       income,
		FilingStatus: status,
		Savings:      savings,
		Scope:        scope,
	}, nil
}
