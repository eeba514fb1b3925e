package finance

import (
	"testing"
	"time"

	"bookkeeping-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalProgressReport(t *testing.T) {
	today := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	goal := GoalRow{
		ID:            1,
		Name:          "旅遊基金",
		TargetAmount:  d("1000"),
		CurrentAmount: d("100"),
		Deadline:      datePtr(2026, 3, 31),
		Status:        models.GoalInProgress,
	}

	progress := GoalProgressReport(goal, today)

	assert.True(t, progress.ProgressPercent.Equal(d("10")))
	assert.True(t, progress.RemainingAmount.Equal(d("900")))
	require.NotNil(t, progress.DaysRemaining)
	assert.Equal(t, 30, *progress.DaysRemaining)
	require.NotNil(t, progress.DailyNeeded)
	assert.True(t, progress.DailyNeeded.Equal(d("30")))
	require.NotNil(t, progress.WeeklyNeeded)
	assert.True(t, progress.WeeklyNeeded.Equal(d("210")))
	require.NotNil(t, progress.MonthlyNeeded)
	assert.True(t, progress.MonthlyNeeded.Equal(d("900")))
}

func TestGoalProgressZeroTarget(t *testing.T) {
	goal := GoalRow{TargetAmount: d("0"), CurrentAmount: d("100"), Status: models.GoalInProgress}

	progress := GoalProgressReport(goal, time.Now())

	assert.True(t, progress.ProgressPercent.IsZero())
}

func TestGoalProgressNoDeadline(t *testing.T) {
	goal := GoalRow{TargetAmount: d("1000"), CurrentAmount: d("100"), Status: models.GoalInProgress}

	progress := GoalProgressReport(goal, time.Now())

	assert.Nil(t, progress.DaysRemaining)
	assert.Nil(t, progress.DailyNeeded)
}

func TestGoalProgressPastDeadlineHasNoPace(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	goal := GoalRow{
		TargetAmount:  d("1000"),
		CurrentAmount: d("100"),
		Deadline:      datePtr(2026, 3, 10),
		Status:        models.GoalInProgress,
	}

	progress := GoalProgressReport(goal, today)

	require.NotNil(t, progress.DaysRemaining)
	assert.Equal(t, -5, *progress.DaysRemaining)
	assert.Nil(t, progress.DailyNeeded)
}

func TestGoalProgressNonActiveStatusHasNoPace(t *testing.T) {
	goal := GoalRow{
		TargetAmount:  d("1000"),
		CurrentAmount: d("1000"),
		Deadline:      datePtr(2030, 1, 1),
		Status:        models.GoalCompleted,
	}

	progress := GoalProgressReport(goal, time.Now())

	assert.Nil(t, progress.DaysRemaining)
	assert.Nil(t, progress.DailyNeeded)
}

func TestResolveGoalStatusAutoCompletes(t *testing.T) {
	got := ResolveGoalStatus(d("1000"), d("1000"), "", models.GoalInProgress)
	assert.Equal(t, models.GoalCompleted, got)

	// Even a caller-supplied status cannot hold a reached goal open.
	got = ResolveGoalStatus(d("1200"), d("1000"), models.GoalInProgress, models.GoalInProgress)
	assert.Equal(t, models.GoalCompleted, got)
}

// Completion is a one-way promotion: when the amount later regresses below
// target the goal stays completed. Known design quirk, kept deliberately.
func TestResolveGoalStatusDoesNotAutoRevert(t *testing.T) {
	got := ResolveGoalStatus(d("500"), d("1000"), "", models.GoalCompleted)
	assert.Equal(t, models.GoalCompleted, got)
}

func TestResolveGoalStatusExplicitChange(t *testing.T) {
	got := ResolveGoalStatus(d("500"), d("1000"), models.GoalCancelled, models.GoalInProgress)
	assert.Equal(t, models.GoalCancelled, got)
}
