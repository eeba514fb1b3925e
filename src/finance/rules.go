package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// KeywordRule maps a description keyword to a category. Keywords are stored
// lowercase and matched as substrings of the lowercased description.
type KeywordRule struct {
	Keyword    string
	CategoryID int
}

// AmountRule maps an inclusive amount range to a category. Ranges may
// overlap; declaration order decides, first match wins.
type AmountRule struct {
	Min        decimal.Decimal
	Max        decimal.Decimal
	CategoryID int
}

// RuleTable is the ordered categorization rule set. It is built once at
// startup and treated as immutable afterwards.
type RuleTable struct {
	Keywords []KeywordRule
	Amounts  []AmountRule
}

// Categorize assigns a category to a transaction description. Keyword rules
// are scanned first in declaration order; amount-range rules are only
// consulted when no keyword matched and an amount is given. Returns false
// when no rule matches; the caller substitutes the default category for the
// transaction's type.
func (t *RuleTable) Categorize(description string, amount *decimal.Decimal) (int, bool) {
	lowered := strings.ToLower(description)
	for _, r := range t.Keywords {
		if strings.Contains(lowered, r.Keyword) {
			return r.CategoryID, true
		}
	}
	if amount == nil {
		return 0, false
	}
	for _, r := range t.Amounts {
		if amount.GreaterThanOrEqual(r.Min) && amount.LessThanOrEqual(r.Max) {
			return r.CategoryID, true
		}
	}
	return 0, false
}

func amountRange(min, max int64, categoryID int) AmountRule {
	return AmountRule{
		Min:        decimal.NewFromInt(min),
		Max:        decimal.NewFromInt(max),
		CategoryID: categoryID,
	}
}

// DefaultRules is the built-in rule table. Category ids follow the seeded
// categories table: 1 餐飲, 2 交通, 3 購物, 4 娛樂, 5 居住, 6 醫療,
// 7 教育, 8 其他支出, 9 薪資, 10 獎金, 11 投資收入, 12 其他收入.
func DefaultRules() *RuleTable {
	return &RuleTable{
		Keywords: []KeywordRule{
			{"早餐", 1},
			{"午餐", 1},
			{"晚餐", 1},
			{"便當", 1},
			{"宵夜", 1},
			{"咖啡", 1},
			{"飲料", 1},
			{"手搖", 1},
			{"捷運", 2},
			{"公車", 2},
			{"高鐵", 2},
			{"台鐵", 2},
			{"計程車", 2},
			{"uber", 2},
			{"加油", 2},
			{"停車", 2},
			{"蝦皮", 3},
			{"momo", 3},
			{"網購", 3},
			{"衣服", 3},
			{"電影", 4},
			{"netflix", 4},
			{"spotify", 4},
			{"遊戲", 4},
			{"房租", 5},
			{"水費", 5},
			{"電費", 5},
			{"瓦斯", 5},
			{"管理費", 5},
			{"診所", 6},
			{"醫院", 6},
			{"藥局", 6},
			{"掛號", 6},
			{"書", 7},
			{"課程", 7},
			{"補習", 7},
			{"薪資", 9},
			{"薪水", 9},
			{"獎金", 10},
			{"紅利", 10},
			{"股息", 11},
			{"配息", 11},
			{"利息", 11},
		},
		Amounts: []AmountRule{
			// Small everyday amounts default to meals; overlapping ranges
			// resolve by declaration order.
			amountRange(15, 50, 1),
			amountRange(20, 80, 1),
			amountRange(100, 300, 3),
		},
	}
}
