package domain

import (
	"fmt"
	"strings"
)

// FilingStatus selects which static bracket table applies
type FilingStatus string

const (
	FilingSingle  FilingStatus = "single"
	FilingMarried FilingStatus = "married"
)

// FilingStatuses lists every supported filing status in display order
var FilingStatuses = []FilingStatus{FilingSingle, FilingMarried}

// ParseFilingStatus normalizes user input into a FilingStatus
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s":
		return FilingSingle, nil
	case "married", "mfj", "married_filing_jointly", "m":
		return FilingMarried, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: single, married)", ErrUnknownFilingStatus, s)
	}
}

// Valid reports whether f is one of the supported statuses
func (f FilingStatus) Valid() bool {
	return f == FilingSingle || f == FilingMarried
}

// Label returns the display form
func (f FilingStatus) Label() string {
	switch f {
	case FilingSingle:
		return "Single"
	case FilingMarried:
		return "Married"
	default:
		return string(f)
	}
}

// Toggle flips between single and married
func (f FilingStatus) Toggle() FilingStatus {
	if f == FilingSingle {
		return FilingMarried
	}
	return FilingSingle
}

// UnmarshalText lets yaml and json decode the aliases accepted by ParseFilingStatus
func (f *FilingStatus) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*f = ""
		return nil
	}
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ReductionScope selects which brackets a rate cut applies to
type ReductionScope string

const (
	ScopeAll     ReductionScope = "all"
	ScopeTopFour ReductionScope = "topFour"
)

// TopFourStartIndex is the 0-based position of the first bracket a top-four cut touches
const TopFourStartIndex = 3

// ReductionScopes lists every supported scope in display order
var ReductionScopes = []ReductionScope{ScopeAll, ScopeTopFour}

// ParseReductionScope normalizes user input into a ReductionScope.
// "top4" is accepted because that is what the web form posts.
func ParseReductionScope(s string) (ReductionScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return ScopeAll, nil
	case "topfour", "top4", "top_four", "top-four":
		return ScopeTopFour, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: all, topFour)", ErrUnknownScope, s)
	}
}

// Valid reports whether r is one of the supported scopes
func (r ReductionScope) Valid() bool {
	return r == ScopeAll || r == ScopeTopFour
}

// Applies reports whether the bracket at 0-based position i is cut under this scope
func (r ReductionScope) Applies(i int) bool {
	return r == ScopeAll || i >= TopFourStartIndex
}

// Label returns the display form
func (r ReductionScope) Label() string {
	switch r {
	case ScopeAll:
		return "All brackets"
	case ScopeTopFour:
		return "Top 4 brackets"
	default:
		return string(r)
	}
}

// Toggle flips between all and topFour
func (r ReductionScope) Toggle() ReductionScope {
	if r == ScopeAll {
		return ScopeTopFour
	}
	return ScopeAll
}

// UnmarshalText lets yaml and json decode the aliases accepted by ParseReductionScope
func (r *ReductionScope) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = ""
		return nil
	}
	parsed, err := ParseReductionScope(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
