// Package finance holds the derived-computation core: rule-based transaction
// categorization, budget and goal evaluation, investment metrics, and
// advisory suggestion generation. Everything here is pure; storage access
// stays in the handlers and the db layer.
package finance

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UsagePercent returns spent/amount as a percentage rounded to 2 places.
// A non-positive amount yields 0 rather than a division fault so that
// reports stay robust against incomplete data.
func UsagePercent(spent, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(amount).Mul(hundred).Round(2)
}

// ROI returns the percentage gain or loss of currentValue relative to cost,
// rounded to 2 places. Zero cost yields 0.
func ROI(currentValue, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return currentValue.Sub(cost).Div(cost).Mul(hundred).Round(2)
}

// AnnualizedReturn converts a holding-period return into a yearly rate:
// ((currentValue/cost)^(365/holdingDays) - 1) * 100, rounded to 2 places.
// Zero cost or zero holding days yield 0. A negative value/cost ratio is
// undefined for fractional exponents and is reported as an error.
func AnnualizedReturn(currentValue, cost decimal.Decimal, holdingDays int) (decimal.Decimal, error) {
	if cost.IsZero() || holdingDays == 0 {
		return decimal.Zero, nil
	}
	ratio := currentValue.Div(cost)
	if ratio.IsNegative() {
		return decimal.Zero, fmt.Errorf("annualized return undefined for negative value/cost ratio %s", ratio)
	}
	annualized := math.Pow(ratio.InexactFloat64(), 365/float64(holdingDays)) - 1
	return decimal.NewFromFloat(annualized * 100).Round(2), nil
}
