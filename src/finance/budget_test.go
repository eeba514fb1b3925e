package finance

import (
	"testing"
	"time"

	"bookkeeping-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalDay = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func budgetRow(id int, amount, spent string, end *models.Date) BudgetRow {
	return BudgetRow{
		ID:           id,
		Name:         "餐飲預算",
		CategoryID:   1,
		CategoryName: "餐飲",
		Amount:       d(amount),
		Spent:        d(spent),
		Period:       "monthly",
		StartDate:    models.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:      end,
		Status:       BudgetOK,
	}
}

func datePtr(y int, m time.Month, day int) *models.Date {
	dt := models.NewDate(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
	return &dt
}

func TestEvaluateBudgetsCompletedAtExactCap(t *testing.T) {
	rows := []BudgetRow{budgetRow(1, "1000", "1000", datePtr(2026, 3, 31))}

	display, toDelete, toComplete := EvaluateBudgets(rows, evalDay)

	require.Len(t, display, 1)
	assert.Equal(t, BudgetCompleted, display[0].Status)
	assert.True(t, display[0].UsagePercent.Equal(d("100")))
	assert.Equal(t, []int{1}, toComplete)
	assert.Empty(t, toDelete)
}

func TestEvaluateBudgetsExpiredUnmetIsPruned(t *testing.T) {
	rows := []BudgetRow{budgetRow(2, "1000", "400", datePtr(2026, 3, 10))}

	display, toDelete, toComplete := EvaluateBudgets(rows, evalDay)

	assert.Empty(t, display, "expired unmet budgets are excluded from the listing")
	assert.Equal(t, []int{2}, toDelete)
	assert.Empty(t, toComplete)
}

func TestEvaluateBudgetsExpiredButMetIsCompleted(t *testing.T) {
	rows := []BudgetRow{budgetRow(3, "1000", "1100", datePtr(2026, 3, 10))}

	display, toDelete, toComplete := EvaluateBudgets(rows, evalDay)

	require.Len(t, display, 1)
	assert.Equal(t, BudgetCompleted, display[0].Status)
	assert.Empty(t, toDelete)
	assert.Equal(t, []int{3}, toComplete)
}

func TestEvaluateBudgetsWarningAbove80(t *testing.T) {
	rows := []BudgetRow{budgetRow(4, "1000", "850", datePtr(2026, 3, 31))}

	display, _, _ := EvaluateBudgets(rows, evalDay)

	require.Len(t, display, 1)
	assert.Equal(t, BudgetWarning, display[0].Status)
	assert.True(t, display[0].Remaining.Equal(d("150")))
	require.NotNil(t, display[0].DaysRemaining)
	assert.Equal(t, 16, *display[0].DaysRemaining)
}

func TestEvaluateBudgetsExactly80IsOK(t *testing.T) {
	rows := []BudgetRow{budgetRow(5, "1000", "800", datePtr(2026, 3, 31))}

	display, _, _ := EvaluateBudgets(rows, evalDay)

	require.Len(t, display, 1)
	assert.Equal(t, BudgetOK, display[0].Status)
}

func TestEvaluateBudgetsNoEndDateNeverExpires(t *testing.T) {
	rows := []BudgetRow{budgetRow(6, "1000", "200", nil)}

	display, toDelete, _ := EvaluateBudgets(rows, evalDay)

	require.Len(t, display, 1)
	assert.Nil(t, display[0].DaysRemaining)
	assert.Empty(t, toDelete)
}

func TestEvaluateBudgetsAlreadyCompletedNotRescheduled(t *testing.T) {
	row := budgetRow(7, "1000", "1200", datePtr(2026, 3, 31))
	row.Status = BudgetCompleted

	display, _, toComplete := EvaluateBudgets(rows(row), evalDay)

	require.Len(t, display, 1)
	assert.Equal(t, BudgetCompleted, display[0].Status)
	assert.Empty(t, toComplete, "already-persisted completions are not rewritten")
}

func TestEvaluateBudgetsZeroAmount(t *testing.T) {
	rows := []BudgetRow{budgetRow(8, "0", "500", datePtr(2026, 3, 31))}

	display, _, _ := EvaluateBudgets(rows, evalDay)

	require.Len(t, display, 1)
	assert.True(t, display[0].UsagePercent.IsZero())
	assert.Equal(t, BudgetOK, display[0].Status)
}

// The budget listing is deliberately non-idempotent: the first evaluation
// schedules expired-unmet budgets for deletion, so once the caller applies
// the mutations a second listing no longer sees them. The two-phase API
// makes that explicit instead of hiding writes inside a read.
func TestEvaluateBudgetsSecondPassAfterPruneIsStable(t *testing.T) {
	stored := map[int]BudgetRow{
		1: budgetRow(1, "1000", "400", datePtr(2026, 3, 10)),
		2: budgetRow(2, "1000", "300", datePtr(2026, 3, 31)),
	}

	first, toDelete, _ := EvaluateBudgets(storedRows(stored), evalDay)
	require.Len(t, first, 1)
	require.Equal(t, []int{1}, toDelete)

	// Apply the mutations the way the listing handler does.
	for _, id := range toDelete {
		delete(stored, id)
	}

	second, toDelete, _ := EvaluateBudgets(storedRows(stored), evalDay)
	assert.Len(t, second, 1)
	assert.Empty(t, toDelete)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func rows(rs ...BudgetRow) []BudgetRow {
	return rs
}

func storedRows(stored map[int]BudgetRow) []BudgetRow {
	var out []BudgetRow
	for id := 1; id <= len(stored)+4; id++ {
		if row, ok := stored[id]; ok {
			out = append(out, row)
		}
	}
	return out
}
