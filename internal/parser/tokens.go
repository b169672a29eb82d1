package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

var (
	// Numeric tokens are whatever survives between runs of non-digits.
	tokenSplitRe = regexp.MustCompile(`[^0-9]+`)

	// Inline amount keywords: "first 100", "f100", "F: 100" and the second
	// leg equivalents. Word boundaries keep the shorthand from firing inside
	// other words.
	firstKeywordRe  = regexp.MustCompile(`(?i)\b(?:first|f)\s*:?\s*(\d+(?:\.\d+)?)`)
	secondKeywordRe = regexp.MustCompile(`(?i)\b(?:second|s)\s*:?\s*(\d+(?:\.\d+)?)`)

	// NUMBER FIRST SECOND with :, -, whitespace or F:/S: labeled separators.
	structuredLineRe = regexp.MustCompile(
		`^\s*(\d{1,4})\s*[-:\s]\s*(?:[Ff]:?\s*)?(\d+(?:\.\d+)?)\s*[-:\s]\s*(?:[Ss]:?\s*)?(\d+(?:\.\d+)?)\s*$`)
	labeledSideRe = regexp.MustCompile(`(?i)\b[fs]:`)
)

// splitTokens splits a cleaned line on runs of one-or-more non-digits.
func splitTokens(line string) []string {
	parts := tokenSplitRe.Split(line, -1)

	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}

	return tokens
}

// extractKeyword removes every match of an amount keyword from the line and
// returns the amount of the last occurrence.
func extractKeyword(line string, re *regexp.Regexp) (decimal.Decimal, string, bool) {
	matches := re.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return decimal.Zero, line, false
	}

	last := matches[len(matches)-1]

	amount, err := decimal.NewFromString(last[1])
	if err != nil {
		return decimal.Zero, line, false
	}

	return amount, re.ReplaceAllString(line, " "), true
}

// parseStructuredLine recognizes the per-line NUMBER FIRST SECOND format.
//
// The pattern alone is ambiguous against a plain run of numbers ("90 91 92"
// must stay three separate stakes), so a line only counts as structured when
// something marks the trailing values as amounts: a colon, an F:/S: label, a
// decimal point, or more digits than any number category allows. Returns
// (nil, true) when the line was structured but invalid; the error is
// accumulated.
func parseStructuredLine(line string, lineNo int, defaultCategory domain.Category, errs *[]ParseError) (*ParsedEntry, bool) {
	m := structuredLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	if !looksStructured(line, m[2], m[3]) {
		return nil, false
	}

	number := m[1]

	category := defaultCategory
	if !category.Valid() {
		category, _ = domain.CategoryForWidth(len(number))
	}

	normalized, err := domain.Normalize(number, category)
	if err != nil {
		*errs = append(*errs, ParseError{
			Line:   lineNo,
			Token:  1,
			Input:  number,
			Reason: err.Error(),
		})

		return nil, true
	}

	first, err := decimal.NewFromString(m[2])
	if err != nil {
		*errs = append(*errs, ParseError{Line: lineNo, Token: 2, Input: m[2], Reason: "invalid first amount"})
		return nil, true
	}

	second, err := decimal.NewFromString(m[3])
	if err != nil {
		*errs = append(*errs, ParseError{Line: lineNo, Token: 3, Input: m[3], Reason: "invalid second amount"})
		return nil, true
	}

	return &ParsedEntry{
		Number:   normalized,
		Category: category,
		First:    first,
		Second:   second,
	}, true
}

func looksStructured(line, firstAmount, secondAmount string) bool {
	if strings.Contains(line, ":") || labeledSideRe.MatchString(line) {
		return true
	}

	for _, amount := range []string{firstAmount, secondAmount} {
		if strings.Contains(amount, ".") || len(amount) > domain.CategoryPacket.Width() {
			return true
		}
	}

	return false
}
