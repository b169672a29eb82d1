package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/parser"
)

func TestParse_SeparatorTolerance(t *testing.T) {
	result := parser.Parse("90-91-92--93---50 second 250 first 500", domain.CategoryAkra)

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 5)

	numbers := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		numbers = append(numbers, e.Number)
		assert.Equal(t, domain.CategoryAkra, e.Category)
		assert.Equal(t, "500", e.First.String())
		assert.Equal(t, "250", e.Second.String())
	}

	assert.Equal(t, []string{"90", "91", "92", "93", "50"}, numbers)
}

func TestParse_MixedDelimiters(t *testing.T) {
	result := parser.Parse("12, 34;56/78.90", domain.CategoryAkra)

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 5)
}

func TestParse_CategoryByDigitLength(t *testing.T) {
	result := parser.Parse("7 42 042 1234 f10", domain.CategoryAkra)

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 4)

	assert.Equal(t, domain.CategoryOpen, result.Entries[0].Category)
	assert.Equal(t, "7", result.Entries[0].Number)
	assert.Equal(t, domain.CategoryAkra, result.Entries[1].Category)
	assert.Equal(t, domain.CategoryRing, result.Entries[2].Category)
	assert.Equal(t, "042", result.Entries[2].Number, "leading zeros significant")
	assert.Equal(t, domain.CategoryPacket, result.Entries[3].Category)
}

func TestParse_KeywordShorthand(t *testing.T) {
	result := parser.Parse("23 45 f100 s50", domain.CategoryAkra)

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 2)

	for _, e := range result.Entries {
		assert.Equal(t, "100", e.First.String())
		assert.Equal(t, "50", e.Second.String())
	}
}

func TestParse_LastKeywordWins(t *testing.T) {
	result := parser.Parse("first 100 23 45 first 300", domain.CategoryAkra)

	require.Len(t, result.Entries, 2)
	for _, e := range result.Entries {
		assert.Equal(t, "300", e.First.String())
		assert.True(t, e.Second.IsZero())
	}
}

func TestParse_KeywordOnLaterLineAppliesToAll(t *testing.T) {
	result := parser.Parse("23 45\n67\nsecond 75", domain.CategoryAkra)

	require.Len(t, result.Entries, 3)
	for _, e := range result.Entries {
		assert.Equal(t, "75", e.Second.String())
	}
}

func TestParse_TokenTooLongReported(t *testing.T) {
	result := parser.Parse("23 12345 45 f10", domain.CategoryAkra)

	require.Len(t, result.Entries, 2)
	require.Len(t, result.Errors, 1)

	assert.Equal(t, 1, result.Errors[0].Line)
	assert.Equal(t, "12345", result.Errors[0].Input)
}

func TestParse_StructuredLineOverridesGlobals(t *testing.T) {
	result := parser.Parse("f500 s250 23 45\n67: 10 20", domain.CategoryAkra)

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 3)

	byNumber := map[string]parser.ParsedEntry{}
	for _, e := range result.Entries {
		byNumber[e.Number] = e
	}

	assert.Equal(t, "500", byNumber["23"].First.String())
	assert.Equal(t, "250", byNumber["23"].Second.String())

	// The structured line keeps its own amounts.
	assert.Equal(t, "10", byNumber["67"].First.String())
	assert.Equal(t, "20", byNumber["67"].Second.String())
}

func TestParse_StructuredLabels(t *testing.T) {
	result := parser.Parse("7 F:100 S:200", domain.CategoryAkra)

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 1)

	e := result.Entries[0]
	assert.Equal(t, "07", e.Number, "structured number padded to default category")
	assert.Equal(t, domain.CategoryAkra, e.Category)
	assert.Equal(t, "100", e.First.String())
	assert.Equal(t, "200", e.Second.String())
}

func TestParse_PlainTripleStaysTokens(t *testing.T) {
	// Without a colon, label, or amount-looking value, three numbers on a
	// line are three stakes, not NUMBER FIRST SECOND.
	result := parser.Parse("90 91 92 f10", domain.CategoryAkra)

	require.Empty(t, result.Errors)
	require.Len(t, result.Entries, 3)
}

func TestParse_StructuredOutOfRangeReported(t *testing.T) {
	result := parser.Parse("150: 10 20", domain.CategoryAkra)

	require.Empty(t, result.Entries)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "150", result.Errors[0].Input)
}

func TestParse_NoAmountsYieldsZeroStakes(t *testing.T) {
	result := parser.Parse("23 45", domain.CategoryAkra)

	require.Len(t, result.Entries, 2)
	for _, e := range result.Entries {
		assert.True(t, e.First.IsZero())
		assert.True(t, e.Second.IsZero())
	}
}

func TestParse_EmptyInput(t *testing.T) {
	result := parser.Parse("   \n\n  ", domain.CategoryAkra)

	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Errors)
}
