package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance holds one user's spendable amount and running spent counter.
// Unlimited marks a privileged (admin) balance: the sufficiency check is
// skipped but the arithmetic still applies, so an unlimited balance may go
// negative by design.
type Balance struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UserID     string
	Amount     decimal.Decimal
	TotalSpent decimal.Decimal
	Version    int64
	Unlimited  bool
}

// ValidateDeduct checks whether amount can be deducted.
func (b *Balance) ValidateDeduct(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	if b.Unlimited {
		return nil
	}

	if b.Amount.LessThan(amount) {
		return &InsufficientBalanceError{Required: amount, Available: b.Amount}
	}

	return nil
}

// Deduct removes amount from the balance. adjustSpent controls whether the
// running spent counter also moves; pass false when the store derives spent
// totals on its own, otherwise the counter double-counts.
func (b *Balance) Deduct(amount decimal.Decimal, adjustSpent bool) error {
	if err := b.ValidateDeduct(amount); err != nil {
		return err
	}

	b.Amount = b.Amount.Sub(amount)
	if adjustSpent {
		b.TotalSpent = b.TotalSpent.Add(amount)
	}

	return nil
}

// Add returns amount to the balance. With adjustSpent the spent counter is
// reduced, so a refund fully reverses an earlier Deduct.
func (b *Balance) Add(amount decimal.Decimal, adjustSpent bool) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	b.Amount = b.Amount.Add(amount)
	if adjustSpent {
		b.TotalSpent = b.TotalSpent.Sub(amount)
	}

	return nil
}

// Reconcile applies a signed delta: positive deducts, negative credits.
// Used by edits and deletes, which charge only the difference between the
// updated and original stake totals.
func (b *Balance) Reconcile(delta decimal.Decimal, adjustSpent bool) error {
	if delta.IsNegative() {
		return b.Add(delta.Neg(), adjustSpent)
	}

	return b.Deduct(delta, adjustSpent)
}
