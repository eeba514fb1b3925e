package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID         int             `json:"id"`
	CategoryID int             `json:"category_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"` // daily, weekly, monthly, yearly
	StartDate  Date            `json:"start_date"`
	EndDate    *Date           `json:"end_date"`
	Status     string          `json:"status"` // ok, warning, completed, expired
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
