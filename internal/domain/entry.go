package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents one committed stake against a number. A legacy bulk row
// encodes several numbers in a single record; that variant is carried
// explicitly in Numbers instead of a delimiter-joined string.
type Entry struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	UserID      string
	Number      string
	Numbers     []string // set instead of Number for bulk rows
	Category    Category
	First       decimal.Decimal
	Second      decimal.Decimal
	Notes       string
	IsDeduction bool
}

// IsBulk reports whether the entry is a legacy bulk row.
func (e *Entry) IsBulk() bool {
	return len(e.Numbers) > 0
}

// AllNumbers returns every number the entry contributes to.
func (e *Entry) AllNumbers() []string {
	if e.IsBulk() {
		return e.Numbers
	}

	return []string{e.Number}
}

// NumberCount returns how many numbers the entry stakes.
func (e *Entry) NumberCount() int {
	if e.IsBulk() {
		return len(e.Numbers)
	}

	return 1
}

// NetStake returns the total balance cost of the entry: first plus second,
// counted once per staked number. Negative for deductions.
func (e *Entry) NetStake() decimal.Decimal {
	return e.First.Add(e.Second).Mul(decimal.NewFromInt(int64(e.NumberCount())))
}

// Validate checks every number against the category width.
func (e *Entry) Validate() error {
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}

	for _, n := range e.AllNumbers() {
		if err := ValidateNumber(n, e.Category); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy, used by the history stack so recorded payloads
// cannot be mutated after the fact.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Numbers != nil {
		c.Numbers = append([]string(nil), e.Numbers...)
	}

	return &c
}

var legacyDelimiters = regexp.MustCompile(`[\s,]+`)

// SplitLegacyNumbers splits a delimiter-joined number column from an old bulk
// record into its constituent numbers. New code never writes such values, but
// stored rows must still read correctly.
func SplitLegacyNumbers(raw string) []string {
	parts := legacyDelimiters.Split(raw, -1)

	numbers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			numbers = append(numbers, p)
		}
	}

	return numbers
}
