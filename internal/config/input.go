package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates raw YAML
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills fields the file left empty: married filing, all-bracket cut
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	if config.Base.FilingStatus == "" {
		config.Base.FilingStatus = domain.FilingMarried
	}
	if config.Base.Scope == "" {
		config.Base.Scope = domain.ScopeAll
	}
	if config.Base.Income.IsNegative() {
		config.Base.Income = decimal.Zero
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.TaxYear < 0 {
		return fmt.Errorf("tax_year cannot be negative")
	}
	if err := ip.validateScenario("base", config.Base); err != nil {
		return err
	}

	if config.CostModel != nil {
		if config.CostModel.PerPointAll.IsNegative() || config.CostModel.PerPointTopFour.IsNegative() {
			return fmt.Errorf("cost_model values must be positive")
		}
	}

	if config.Brackets != nil {
		if len(config.Brackets.Single) > 0 {
			if err := domain.ValidateBrackets(config.Brackets.Single); err != nil {
				return fmt.Errorf("brackets.single: %w", err)
			}
		}
		if len(config.Brackets.Married) > 0 {
			if err := domain.ValidateBrackets(config.Brackets.Married); err != nil {
				return fmt.Errorf("brackets.married: %w", err)
			}
		}
	}

	names := map[string]bool{}
	for i, o := range config.Scenarios {
		if o.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i+1)
		}
		if names[o.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i+1, o.Name)
		}
		names[o.Name] = true
	}
	for _, s := range config.ResolveScenarios()[1:] {
		if err := ip.validateScenario(s.Name, s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validateScenario(name string, s domain.Scenario) error {
	if !s.FilingStatus.Valid() {
		return fmt.Errorf("scenario %s: %w: %q", name, domain.ErrUnknownFilingStatus, s.FilingStatus)
	}
	if !s.Scope.Valid() {
		return fmt.Errorf("scenario %s: %w: %q", name, domain.ErrUnknownScope, s.Scope)
	}
	if s.Savings.IsNegative() {
		return fmt.Errorf("scenario %s: %w: %s", name, domain.ErrNegativeSavings, s.Savings)
	}
	if s.Income.IsNegative() {
		return fmt.Errorf("scenario %s: income cannot be negative", name)
	}
	return nil
}
