package finance

import (
	"time"

	"bookkeeping-server/src/models"

	"github.com/shopspring/decimal"
)

// Budget statuses.
const (
	BudgetOK        = "ok"
	BudgetWarning   = "warning"
	BudgetCompleted = "completed"
	BudgetExpired   = "expired"
)

// usage above this percentage flags a budget as warning
const budgetWarningThreshold = 80

// BudgetRow is a budget joined with its category and spend-to-date, as read
// from storage.
type BudgetRow struct {
	ID           int
	Name         string
	CategoryID   int
	CategoryName string
	CategoryIcon *string
	Amount       decimal.Decimal
	Spent        decimal.Decimal
	Period       string
	StartDate    models.Date
	EndDate      *models.Date
	Status       string
}

// BudgetStatus is the evaluated, display-ready view of a budget.
type BudgetStatus struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	CategoryID    int             `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryIcon  *string         `json:"category_icon"`
	Amount        decimal.Decimal `json:"amount"`
	Spent         decimal.Decimal `json:"spent"`
	Remaining     decimal.Decimal `json:"remaining"`
	UsagePercent  decimal.Decimal `json:"usage_percent"`
	Period        string          `json:"period"`
	StartDate     models.Date     `json:"start_date"`
	EndDate       *models.Date    `json:"end_date"`
	DaysRemaining *int            `json:"days_remaining"`
	Status        string          `json:"status"`
}

// EvaluateBudgets classifies each budget from its current spend and dates.
// It returns the display list plus the ids whose stored state must change:
// toDelete holds budgets that expired without being met (they are pruned,
// not just flagged, and are excluded from the display list), toComplete
// holds budgets whose spend reached the cap since the last evaluation.
// The caller applies the mutations; evaluation itself touches nothing.
func EvaluateBudgets(rows []BudgetRow, today time.Time) (display []BudgetStatus, toDelete []int, toComplete []int) {
	day := truncateToDay(today)

	for _, row := range rows {
		usage := UsagePercent(row.Spent, row.Amount)
		completed := usage.GreaterThanOrEqual(hundred)

		var daysRemaining *int
		expired := false
		if row.EndDate != nil {
			d := daysBetween(day, row.EndDate.Time)
			daysRemaining = &d
			expired = d < 0
		}

		if expired && !completed {
			toDelete = append(toDelete, row.ID)
			continue
		}

		status := BudgetOK
		switch {
		case completed:
			status = BudgetCompleted
			if row.Status != BudgetCompleted {
				toComplete = append(toComplete, row.ID)
			}
		case expired:
			status = BudgetExpired
		case usage.GreaterThan(decimal.NewFromInt(budgetWarningThreshold)):
			status = BudgetWarning
		}

		display = append(display, BudgetStatus{
			ID:            row.ID,
			Name:          row.Name,
			CategoryID:    row.CategoryID,
			CategoryName:  row.CategoryName,
			CategoryIcon:  row.CategoryIcon,
			Amount:        row.Amount,
			Spent:         row.Spent,
			Remaining:     row.Amount.Sub(row.Spent),
			UsagePercent:  usage,
			Period:        row.Period,
			StartDate:     row.StartDate,
			EndDate:       row.EndDate,
			DaysRemaining: daysRemaining,
			Status:        status,
		})
	}
	return display, toDelete, toComplete
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(truncateToDay(to).Sub(truncateToDay(from)).Hours() / 24)
}
