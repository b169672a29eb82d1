package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Category classifies a number by digit width. The width is the category's
// identity: a two digit number is always akra, never a short ring.
type Category string

const (
	CategoryOpen   Category = "open"   // 1 digit
	CategoryAkra   Category = "akra"   // 2 digits
	CategoryRing   Category = "ring"   // 3 digits
	CategoryPacket Category = "packet" // 4 digits
)

// CategoryWidths maps each category to its fixed digit width.
var CategoryWidths = map[Category]int{
	CategoryOpen:   1,
	CategoryAkra:   2,
	CategoryRing:   3,
	CategoryPacket: 4,
}

// Width returns the category's digit width, 0 for an unknown category.
func (c Category) Width() int {
	return CategoryWidths[c]
}

// MaxValue returns the highest number the category admits (9, 99, 999, 9999).
func (c Category) MaxValue() int {
	max := 1
	for i := 0; i < c.Width(); i++ {
		max *= 10
	}

	return max - 1
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := CategoryWidths[c]
	return ok
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}

	return c, nil
}

// CategoryForWidth returns the category whose width matches the given digit
// count.
func CategoryForWidth(width int) (Category, bool) {
	for c, w := range CategoryWidths {
		if w == width {
			return c, true
		}
	}

	return "", false
}

// Normalize canonicalizes a raw digit string for the category: the value is
// left-padded with zeros to the category width. A value above the category
// maximum is clamped to all nines; the clamped number is still returned so
// the caller can keep it, alongside ErrNumberOutOfRange.
func Normalize(raw string, c Category) (string, error) {
	if !c.Valid() {
		return "", ErrInvalidCategory
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidNumber)
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}

	if value > c.MaxValue() {
		return fmt.Sprintf("%0*d", c.Width(), c.MaxValue()),
			fmt.Errorf("%w: %d exceeds %s maximum %d", ErrNumberOutOfRange, value, c, c.MaxValue())
	}

	return fmt.Sprintf("%0*d", c.Width(), value), nil
}

// ValidateNumber checks that a stored number is exactly the category's width
// and all digits. Unlike Normalize it never repairs the value.
func ValidateNumber(number string, c Category) error {
	if !c.Valid() {
		return ErrInvalidCategory
	}

	if len(number) != c.Width() {
		return fmt.Errorf("%w: %q is not %d digits", ErrInvalidNumber, number, c.Width())
	}

	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q contains non-digits", ErrInvalidNumber, number)
		}
	}

	return nil
}
