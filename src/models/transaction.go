package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int             `json:"id"`
	AccountID   int             `json:"account_id"`
	CategoryID  *int            `json:"category_id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"` // income, expense
	Notes       *string         `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
