package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCategorizeKeywordMatch(t *testing.T) {
	rules := DefaultRules()

	id, ok := rules.Categorize("午餐便當", nil)
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestCategorizeKeywordPrecedesAmountRange(t *testing.T) {
	rules := DefaultRules()

	// 1000 matches no amount range, but the keyword still wins.
	id, ok := rules.Categorize("午餐便當", dec(1000))
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	rules := DefaultRules()

	id, ok := rules.Categorize("NETFLIX 月費", nil)
	require.True(t, ok)
	assert.Equal(t, 4, id)
}

func TestCategorizeAmountFallback(t *testing.T) {
	rules := DefaultRules()

	id, ok := rules.Categorize("unknown item", dec(30))
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestCategorizeNoMatch(t *testing.T) {
	rules := DefaultRules()

	_, ok := rules.Categorize("unknown item", dec(1000))
	assert.False(t, ok)

	_, ok = rules.Categorize("unknown item", nil)
	assert.False(t, ok)
}

func TestCategorizeRangeBoundsInclusive(t *testing.T) {
	rules := DefaultRules()

	id, ok := rules.Categorize("x", dec(15))
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = rules.Categorize("x", dec(80))
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = rules.Categorize("x", dec(81))
	assert.False(t, ok)
}

// Overlapping ranges resolve by declaration order, mirroring keyword
// precedence.
func TestCategorizeOverlappingRangesFirstWins(t *testing.T) {
	table := &RuleTable{
		Amounts: []AmountRule{
			amountRange(15, 50, 7),
			amountRange(20, 80, 3),
		},
	}

	id, ok := table.Categorize("x", dec(30))
	require.True(t, ok)
	assert.Equal(t, 7, id)

	// Past the first range's upper bound the second one applies.
	id, ok = table.Categorize("x", dec(60))
	require.True(t, ok)
	assert.Equal(t, 3, id)
}

func TestCategorizeKeywordOrder(t *testing.T) {
	table := &RuleTable{
		Keywords: []KeywordRule{
			{"coffee", 2},
			{"fee", 5},
		},
	}

	// "coffee" contains "fee" as well; the earlier rule wins.
	id, ok := table.Categorize("Morning Coffee", nil)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}
