package finance

import (
	"time"

	"bookkeeping-server/src/models"

	"github.com/shopspring/decimal"
)

// GoalRow is a financial goal as read from storage.
type GoalRow struct {
	ID            int
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *models.Date
	Priority      int
	Status        string
}

// GoalProgress is the derived progress report for a goal. The pace fields
// are only set for in-progress goals with a future deadline.
type GoalProgress struct {
	ProgressPercent decimal.Decimal  `json:"progress_percent"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
	DaysRemaining   *int             `json:"days_remaining"`
	DailyNeeded     *decimal.Decimal `json:"daily_needed"`
	WeeklyNeeded    *decimal.Decimal `json:"weekly_needed"`
	MonthlyNeeded   *decimal.Decimal `json:"monthly_needed"`
}

// GoalProgressReport computes progress and required saving pace for a goal.
// Zero target amounts yield 0 percent rather than a division fault.
func GoalProgressReport(g GoalRow, today time.Time) GoalProgress {
	progress := GoalProgress{
		ProgressPercent: UsagePercent(g.CurrentAmount, g.TargetAmount),
		RemainingAmount: g.TargetAmount.Sub(g.CurrentAmount),
	}

	if g.Deadline == nil || g.Status != models.GoalInProgress {
		return progress
	}

	days := daysBetween(truncateToDay(today), g.Deadline.Time)
	progress.DaysRemaining = &days
	if days <= 0 {
		return progress
	}

	daily := progress.RemainingAmount.Div(decimal.NewFromInt(int64(days))).Round(2)
	weekly := progress.RemainingAmount.Div(decimal.NewFromFloat(float64(days) / 7)).Round(2)
	monthly := progress.RemainingAmount.Div(decimal.NewFromFloat(float64(days) / 30)).Round(2)
	progress.DailyNeeded = &daily
	progress.WeeklyNeeded = &weekly
	progress.MonthlyNeeded = &monthly
	return progress
}

// ResolveGoalStatus applies the automatic completion rule: once the saved
// amount reaches the target, the goal is completed regardless of the status
// the caller supplied. The promotion is one-way; a completed goal whose
// amount later drops below target stays completed unless the caller
// explicitly requests another status.
func ResolveGoalStatus(current, target decimal.Decimal, requested, previous string) string {
	status := previous
	if requested != "" {
		status = requested
	}
	if current.GreaterThanOrEqual(target) {
		return models.GoalCompleted
	}
	return status
}
