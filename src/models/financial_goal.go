package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal statuses. Completion is promoted automatically once current_amount
// reaches target_amount and is never reverted automatically.
const (
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
	GoalCancelled  = "cancelled"
)

type FinancialGoal struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *Date           `json:"deadline"`
	Priority      int             `json:"priority"` // 1-5
	Status        string          `json:"status"`
	Description   *string         `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
