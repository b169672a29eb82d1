package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Entry errors
	ErrEntryNotFound    = errors.New("entry not found")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrNumberOutOfRange = errors.New("number out of range")
	ErrNoValidEntries   = errors.New("no valid entries in input")
	ErrNoAmount         = errors.New("no stake amount specified")

	// Balance errors
	ErrBalanceNotFound = errors.New("balance not found")
	ErrInvalidAmount   = errors.New("amount must not be negative")

	// History errors
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// Filter errors
	ErrInvalidFilter = errors.New("invalid filter criteria")

	// Ledger errors
	ErrInconsistentLedger = errors.New("ledger is inconsistent: live entries do not match spent total")
)

// Side identifies one of the two stake legs on an entry.
type Side string

const (
	SideFirst  Side = "first"
	SideSecond Side = "second"
)

// InsufficientBalanceError reports a failed sufficiency check with the
// required and available amounts.
type InsufficientBalanceError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s",
		e.Required.String(), e.Available.String())
}

// Shortfall returns how much the balance is missing.
func (e *InsufficientBalanceError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}

// LimitExceededError reports a cumulative amount-limit violation for one
// number and side.
type LimitExceededError struct {
	Number    string
	Category  Category
	Side      Side
	Cap       decimal.Decimal
	Current   decimal.Decimal
	Attempted decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("limit exceeded for %s %s %s: cap %s, current %s, attempted %s",
		e.Category, e.Number, e.Side, e.Cap.String(), e.Current.String(), e.Attempted.String())
}

// Excess returns how far past the cap the attempted total lands.
func (e *LimitExceededError) Excess() decimal.Decimal {
	return e.Current.Add(e.Attempted).Sub(e.Cap)
}

// PersistenceError reports the outcome of a batch whose entry writes failed.
// AllFailed distinguishes the full-rollback case from a partial success.
type PersistenceError struct {
	Requested int
	Succeeded int
	AllFailed bool
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.AllFailed {
		return fmt.Sprintf("persisting batch failed for all %d entries, balance rolled back: %v",
			e.Requested, e.Err)
	}

	return fmt.Sprintf("persisting batch partially failed: %d of %d entries committed: %v",
		e.Succeeded, e.Requested, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
