package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
)

// DefaultTaxYear is the year the built-in tables describe
const DefaultTaxYear = 2025

// Brackets2025Single returns a fresh copy of the 2025 single-filer table
func Brackets2025Single() []domain.Bracket {
	return []domain.Bracket{
		domain.NewBracket(0, 11925, "0.10"),
		domain.NewBracket(11925, 48475, "0.12"),
		domain.NewBracket(48475, 103350, "0.22"),
		domain.NewBracket(103350, 197300, "0.24"),
		domain.NewBracket(197300, 250525, "0.32"),
		domain.NewBracket(250525, 626350, "0.35"),
		domain.NewTopBracket(626350, "0.37"),
	}
}

// Brackets2025Married returns a fresh copy of the 2025 married-filing-jointly table
func Brackets2025Married() []domain.Bracket {
	return []domain.Bracket{
		domain.NewBracket(0, 23850, "0.10"),
		domain.NewBracket(23850, 96950, "0.12"),
		domain.NewBracket(96950, 206700, "0.22"),
		domain.NewBracket(206700, 394600, "0.24"),
		domain.NewBracket(394600, 501050, "0.32"),
		domain.NewBracket(501050, 751600, "0.35"),
		domain.NewTopBracket(751600, "0.37"),
	}
}

// BracketTables maps each filing status to its bracket table
type BracketTables struct {
	Year   int
	tables map[domain.FilingStatus][]domain.Bracket
}

// NewBracketTables returns the built-in 2025 tables
func NewBracketTables() *BracketTables {
	return &BracketTables{
		Year: DefaultTaxYear,
		tables: map[domain.FilingStatus][]domain.Bracket{
			domain.FilingSingle:  Brackets2025Single(),
			domain.FilingMarried: Brackets2025Married(),
		},
	}
}

// NewBracketTablesWithConfig starts from the built-in tables and applies any overrides
func NewBracketTablesWithConfig(year int, overrides *domain.BracketTableConfig) (*BracketTables, error) {
	bt := NewBracketTables()
	if year > 0 {
		bt.Year = year
	}
	if overrides == nil {
		return bt, nil
	}
	if len(overrides.Single) > 0 {
		if err := bt.Set(domain.FilingSingle, overrides.Single); err != nil {
			return nil, err
		}
	}
	if len(overrides.Married) > 0 {
		if err := bt.Set(domain.FilingMarried, overrides.Married); err != nil {
			return nil, err
		}
	}
	return bt, nil
}

// Set validates and stores a copy of brackets for status
func (bt *BracketTables) Set(status domain.FilingStatus, brackets []domain.Bracket) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, status)
	}
	if err := domain.ValidateBrackets(brackets); err != nil {
		return fmt.Errorf("%s table: %w", status, err)
	}
	bt.tables[status] = domain.CloneBrackets(brackets)
	return nil
}

// Lookup returns a copy of the table for status
func (bt *BracketTables) Lookup(status domain.FilingStatus) ([]domain.Bracket, error) {
	table, ok := bt.tables[status]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, status)
	}
	return domain.CloneBrackets(table), nil
}
