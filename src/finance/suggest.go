package finance

import (
	"fmt"
	"time"

	"bookkeeping-server/src/models"

	"github.com/shopspring/decimal"
)

// Suggestion types.
const (
	SuggestWarning = "warning"
	SuggestCaution = "caution"
	SuggestInfo    = "info"
	SuggestSuccess = "success"
)

// Suggestion is one advisory message. Advisory only; generating suggestions
// has no side effects.
type Suggestion struct {
	Type     string `json:"type"`
	Category string `json:"category"` // budget, goal, savings
	Message  string `json:"message"`
}

// GenerateSuggestions composes advisory messages from this month's income
// and expense totals, the evaluated budgets, and the in-progress goals.
// Output order is fixed: budget overspend warnings, budget cautions, goal
// pacing advice, then savings-rate commentary.
func GenerateSuggestions(monthlyIncome, monthlyExpense decimal.Decimal, budgets []BudgetStatus, goals []GoalRow, today time.Time) []Suggestion {
	suggestions := []Suggestion{}
	disposable := monthlyIncome.Sub(monthlyExpense)

	for _, b := range budgets {
		if b.UsagePercent.GreaterThan(hundred) {
			over := b.Spent.Sub(b.Amount).Round(2)
			suggestions = append(suggestions, Suggestion{
				Type:     SuggestWarning,
				Category: "budget",
				Message:  fmt.Sprintf("「%s」預算已超支 %s 元，建議檢視相關支出", b.Name, over),
			})
		}
	}
	for _, b := range budgets {
		if b.UsagePercent.GreaterThan(hundred) {
			continue
		}
		if b.UsagePercent.GreaterThan(decimal.NewFromInt(budgetWarningThreshold)) {
			suggestions = append(suggestions, Suggestion{
				Type:     SuggestCaution,
				Category: "budget",
				Message:  fmt.Sprintf("「%s」預算已使用 %s%%，請注意控制支出", b.Name, b.UsagePercent),
			})
		}
	}

	dailyDisposable := dailyDisposableBudget(disposable, today)
	for _, g := range goals {
		if g.Status != models.GoalInProgress || g.Deadline == nil {
			continue
		}
		progress := GoalProgressReport(g, today)
		if progress.DailyNeeded == nil {
			continue
		}
		if progress.DailyNeeded.LessThanOrEqual(dailyDisposable) {
			suggestions = append(suggestions, Suggestion{
				Type:     SuggestSuccess,
				Category: "goal",
				Message:  fmt.Sprintf("「%s」每天存 %s 元即可如期達成，以目前結餘是可行的", g.Name, progress.DailyNeeded),
			})
		} else {
			suggestions = append(suggestions, Suggestion{
				Type:     SuggestInfo,
				Category: "goal",
				Message:  fmt.Sprintf("「%s」需要每天存 %s 元，超出目前每日結餘，建議重新規劃目標或期限", g.Name, progress.DailyNeeded),
			})
		}
	}

	if monthlyIncome.IsPositive() {
		savingsRate := disposable.Div(monthlyIncome).Mul(hundred).Round(2)
		if savingsRate.LessThan(decimal.NewFromInt(10)) {
			suggestions = append(suggestions, Suggestion{
				Type:     SuggestWarning,
				Category: "savings",
				Message:  fmt.Sprintf("本月儲蓄率僅 %s%%，建議檢視支出結構", savingsRate),
			})
		} else if savingsRate.GreaterThanOrEqual(decimal.NewFromInt(30)) {
			suggestions = append(suggestions, Suggestion{
				Type:     SuggestSuccess,
				Category: "savings",
				Message:  fmt.Sprintf("本月儲蓄率達 %s%%，維持得很好", savingsRate),
			})
		}
	}

	return suggestions
}

// dailyDisposableBudget spreads the month's remaining disposable income over
// the days left in the current month, today included.
func dailyDisposableBudget(disposable decimal.Decimal, today time.Time) decimal.Decimal {
	endOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	daysLeft := daysBetween(today, endOfMonth) + 1
	if daysLeft <= 0 {
		daysLeft = 1
	}
	return disposable.Div(decimal.NewFromInt(int64(daysLeft))).Round(2)
}
