// Package parser turns free-form user text into normalized stake entries.
package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// ParsedEntry is one normalized number with its stake amounts.
type ParsedEntry struct {
	Number   string
	Category domain.Category
	First    decimal.Decimal
	Second   decimal.Decimal
}

// ParseError reports one rejected token with a 1-based line/token reference
// for display. Errors accumulate; parsing never aborts on them.
type ParseError struct {
	Line   int
	Token  int
	Input  string
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d token %d: %q: %s", e.Line, e.Token, e.Input, e.Reason)
}

// Result carries the valid entries alongside any accumulated errors. The
// caller decides whether to proceed with the valid subset.
type Result struct {
	Entries []ParsedEntry
	Errors  []ParseError
}

type rawToken struct {
	value string
	line  int
	index int
}

// Parse extracts entries from a block of user text.
//
// Any run of non-digit characters separates numeric tokens, so mixed and
// repeated delimiters ("90-91-92--93---50") all split the same way. Inline
// amount keywords (first/second, shorthand f/s) apply to every free token in
// the submission; when a keyword repeats, the last occurrence wins. A
// structured line of the form NUMBER FIRST SECOND overrides the global
// amounts for that line only, and its number is normalized against
// defaultCategory. Free tokens are categorized by their own digit length.
func Parse(text string, defaultCategory domain.Category) Result {
	var result Result

	first := decimal.Zero
	second := decimal.Zero

	var structured []ParsedEntry
	var tokens []rawToken

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1

		if entry, ok := parseStructuredLine(line, lineNo, defaultCategory, &result.Errors); ok {
			if entry != nil {
				structured = append(structured, *entry)
			}

			continue
		}

		cleaned := line
		if amount, rest, ok := extractKeyword(cleaned, firstKeywordRe); ok {
			first = amount
			cleaned = rest
		}
		if amount, rest, ok := extractKeyword(cleaned, secondKeywordRe); ok {
			second = amount
			cleaned = rest
		}

		for j, token := range splitTokens(cleaned) {
			tokens = append(tokens, rawToken{value: token, line: lineNo, index: j + 1})
		}
	}

	for _, tok := range tokens {
		category, ok := domain.CategoryForWidth(len(tok.value))
		if !ok {
			result.Errors = append(result.Errors, ParseError{
				Line:   tok.line,
				Token:  tok.index,
				Input:  tok.value,
				Reason: "number must be 1 to 4 digits",
			})

			continue
		}

		result.Entries = append(result.Entries, ParsedEntry{
			Number:   tok.value,
			Category: category,
			First:    first,
			Second:   second,
		})
	}

	result.Entries = append(result.Entries, structured...)

	return result
}
