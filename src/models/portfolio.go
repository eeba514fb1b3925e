package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvestmentAccount struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	AccountType string    `json:"account_type"` // general, retirement, ...
	Broker      *string   `json:"broker"`
	Currency    string    `json:"currency"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Holding struct {
	ID          int             `json:"id"`
	AccountID   int             `json:"account_id"`
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	AssetType   string          `json:"asset_type"` // stock, etf, bond, fund, cash
	Market      string          `json:"market"`
	AccountName string          `json:"account_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type InvestmentTransaction struct {
	ID        int             `json:"id"`
	HoldingID int             `json:"holding_id"`
	Type      string          `json:"type"` // buy, sell, dividend
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Fee       decimal.Decimal `json:"fee"`
	Tax       decimal.Decimal `json:"tax"`
	Date      Date            `json:"date"`
	Symbol    string          `json:"symbol,omitempty"`
	Name      string          `json:"name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type WatchlistEntry struct {
	ID                 int              `json:"id"`
	Symbol             string           `json:"symbol"`
	Name               string           `json:"name"`
	AlertPriceHigh     *decimal.Decimal `json:"alert_price_high"`
	AlertPriceLow      *decimal.Decimal `json:"alert_price_low"`
	AlertChangePercent *decimal.Decimal `json:"alert_change_percent"`
	Note               *string          `json:"note"`
	CurrentPrice       *decimal.Decimal `json:"current_price,omitempty"`
	Change             *decimal.Decimal `json:"change,omitempty"`
}
