package domain

import "github.com/shopspring/decimal"

// SideLimits holds the optional cumulative per-number ceilings for one
// category. A nil pointer means unlimited.
type SideLimits struct {
	First  *decimal.Decimal
	Second *decimal.Decimal
}

// LimitConfig maps categories to their configured ceilings.
type LimitConfig map[Category]SideLimits

// Cap returns the configured ceiling for a category and side.
func (l LimitConfig) Cap(c Category, side Side) (decimal.Decimal, bool) {
	limits, ok := l[c]
	if !ok {
		return decimal.Zero, false
	}

	var cap *decimal.Decimal
	if side == SideSecond {
		cap = limits.Second
	} else {
		cap = limits.First
	}

	if cap == nil {
		return decimal.Zero, false
	}

	return *cap, true
}

// Check validates that adding attempted to the current cumulative total for
// one number stays within the configured cap. Negative attempts (deductions)
// always pass.
func (l LimitConfig) Check(c Category, number string, side Side, current, attempted decimal.Decimal) error {
	if !attempted.IsPositive() {
		return nil
	}

	cap, ok := l.Cap(c, side)
	if !ok {
		return nil
	}

	if current.Add(attempted).GreaterThan(cap) {
		return &LimitExceededError{
			Number:    number,
			Category:  c,
			Side:      side,
			Cap:       cap,
			Current:   current,
			Attempted: attempted,
		}
	}

	return nil
}
