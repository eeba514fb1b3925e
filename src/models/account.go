package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"` // checking, savings, cash, credit_card
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
