package finance

import (
	"testing"
	"time"

	"bookkeeping-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluated(name, amount, spent string) BudgetStatus {
	return BudgetStatus{
		Name:         name,
		Amount:       d(amount),
		Spent:        d(spent),
		UsagePercent: UsagePercent(d(spent), d(amount)),
	}
}

func TestGenerateSuggestionsOrdering(t *testing.T) {
	today := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	budgets := []BudgetStatus{
		evaluated("娛樂", "1000", "850"),  // caution
		evaluated("餐飲", "1000", "1200"), // overspend
	}
	goals := []GoalRow{{
		Name:          "旅遊基金",
		TargetAmount:  d("10000"),
		CurrentAmount: d("1000"),
		Deadline:      datePtr(2026, 3, 31),
		Status:        models.GoalInProgress,
	}}

	// Income 40000, expense 38000: savings rate 5% -> warning.
	got := GenerateSuggestions(d("40000"), d("38000"), budgets, goals, today)

	require.Len(t, got, 4)
	assert.Equal(t, SuggestWarning, got[0].Type)
	assert.Equal(t, "budget", got[0].Category)
	assert.Contains(t, got[0].Message, "餐飲")
	assert.Contains(t, got[0].Message, "200", "overspend magnitude is reported")

	assert.Equal(t, SuggestCaution, got[1].Type)
	assert.Contains(t, got[1].Message, "娛樂")

	assert.Equal(t, "goal", got[2].Category)

	assert.Equal(t, "savings", got[3].Category)
	assert.Equal(t, SuggestWarning, got[3].Type)
}

func TestGenerateSuggestionsGoalAffordable(t *testing.T) {
	today := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	goals := []GoalRow{{
		Name:          "旅遊基金",
		TargetAmount:  d("10000"),
		CurrentAmount: d("1000"),
		Deadline:      datePtr(2026, 3, 31),
		Status:        models.GoalInProgress,
	}}

	// Disposable 30000 over 31 days ≈ 967/day; needed 300/day.
	got := GenerateSuggestions(d("60000"), d("30000"), nil, goals, today)

	require.NotEmpty(t, got)
	assert.Equal(t, SuggestSuccess, got[0].Type)
	assert.Equal(t, "goal", got[0].Category)
}

func TestGenerateSuggestionsGoalNeedsReplanning(t *testing.T) {
	today := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	goals := []GoalRow{{
		Name:          "買車",
		TargetAmount:  d("100000"),
		CurrentAmount: d("1000"),
		Deadline:      datePtr(2026, 3, 4),
		Status:        models.GoalInProgress,
	}}

	got := GenerateSuggestions(d("60000"), d("30000"), nil, goals, today)

	require.NotEmpty(t, got)
	assert.Equal(t, SuggestInfo, got[0].Type)
	assert.Contains(t, got[0].Message, "買車")
}

func TestGenerateSuggestionsSkipsNonActiveGoals(t *testing.T) {
	today := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	goals := []GoalRow{
		{Name: "done", TargetAmount: d("1000"), CurrentAmount: d("1000"), Deadline: datePtr(2026, 3, 31), Status: models.GoalCompleted},
		{Name: "no deadline", TargetAmount: d("1000"), CurrentAmount: d("10"), Status: models.GoalInProgress},
	}

	got := GenerateSuggestions(d("60000"), d("30000"), nil, goals, today)

	for _, s := range got {
		assert.NotEqual(t, "goal", s.Category)
	}
}

func TestGenerateSuggestionsSavingsRate(t *testing.T) {
	today := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// >= 30% -> success
	got := GenerateSuggestions(d("50000"), d("30000"), nil, nil, today)
	require.Len(t, got, 1)
	assert.Equal(t, SuggestSuccess, got[0].Type)
	assert.Equal(t, "savings", got[0].Category)

	// Between 10% and 30% -> silence
	got = GenerateSuggestions(d("50000"), d("40000"), nil, nil, today)
	assert.Empty(t, got)

	// Zero income -> no savings-rate signal at all
	got = GenerateSuggestions(d("0"), d("10000"), nil, nil, today)
	assert.Empty(t, got)
}
