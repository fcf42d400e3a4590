package domain

import "errors"

var (
	// ErrInvalidBrackets marks a bracket table that breaks the ordering invariant
	ErrInvalidBrackets = errors.New("invalid bracket table")
	// ErrNegativeSavings is returned when a savings amount below zero reaches the adjuster
	ErrNegativeSavings = errors.New("savings amount cannot be negative")
	// ErrNonFiniteAmount is returned when NaN or Inf is converted into an amount
	ErrNonFiniteAmount = errors.New("amount must be finite")
	// ErrUnknownScope is returned for a reduction scope other than all/topFour
	ErrUnknownScope = errors.New("unknown reduction scope")
	// ErrUnknownFilingStatus is returned for a filing status other than single/married
	ErrUnknownFilingStatus = errors.New("unknown filing status")
)
