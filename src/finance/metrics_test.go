package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUsagePercent(t *testing.T) {
	tests := []struct {
		name   string
		spent  string
		amount string
		want   string
	}{
		{"quarter used", "250", "1000", "25"},
		{"fully used", "1000", "1000", "100"},
		{"overspent", "1200", "1000", "120"},
		{"rounds to two places", "1", "3", "33.33"},
		{"zero amount", "500", "0", "0"},
		{"negative amount", "500", "-100", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UsagePercent(d(tt.spent), d(tt.amount))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestROI(t *testing.T) {
	assert.True(t, ROI(d("120"), d("100")).Equal(d("20")))
	assert.True(t, ROI(d("80"), d("100")).Equal(d("-20")))
	assert.True(t, ROI(d("100"), d("0")).Equal(d("0")))
}

func TestAnnualizedReturn(t *testing.T) {
	got, err := AnnualizedReturn(d("110"), d("100"), 365)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("10")), "got %s", got)

	// Half a year at +10% annualizes above 20%.
	got, err = AnnualizedReturn(d("105"), d("100"), 182)
	require.NoError(t, err)
	assert.True(t, got.GreaterThan(d("10")), "got %s", got)
}

func TestAnnualizedReturnZeroInputs(t *testing.T) {
	got, err := AnnualizedReturn(d("110"), d("0"), 365)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = AnnualizedReturn(d("110"), d("100"), 0)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestAnnualizedReturnNegativeRatio(t *testing.T) {
	_, err := AnnualizedReturn(d("-50"), d("100"), 100)
	assert.Error(t, err)
}

func TestInvestableAmount(t *testing.T) {
	advice := InvestableAmount(d("50000"), d("20000"), RiskAggressive, true, false)

	assert.True(t, advice.AvailableAfterSavings.Equal(d("30000")))
	assert.True(t, advice.RiskFactor.Equal(d("0.75")))
	assert.True(t, advice.RecommendedAmount.Equal(d("22500")))
	assert.Empty(t, advice.Warnings)
	assert.Equal(t, 60, advice.Allocation["stock"])
}

func TestInvestableAmountFactorHalved(t *testing.T) {
	withDebt := InvestableAmount(d("50000"), d("20000"), RiskBalanced, true, true)
	assert.True(t, withDebt.RiskFactor.Equal(d("0.25")))
	assert.True(t, withDebt.RecommendedAmount.Equal(d("7500")))

	noFund := InvestableAmount(d("50000"), d("20000"), RiskBalanced, false, false)
	assert.True(t, noFund.RiskFactor.Equal(d("0.25")))
}

func TestInvestableAmountWarningsCumulative(t *testing.T) {
	advice := InvestableAmount(d("50000"), d("20000"), RiskConservative, false, true)
	assert.Len(t, advice.Warnings, 2)
}

func TestInvestableAmountNothingAvailable(t *testing.T) {
	advice := InvestableAmount(d("20000"), d("25000"), RiskAggressive, false, true)

	assert.True(t, advice.RecommendedAmount.IsZero())
	// Both standing warnings plus the insufficient-disposable one.
	assert.Len(t, advice.Warnings, 3)
	assert.Nil(t, advice.Allocation)
}

func TestInvestableAmountUnknownProfileFallsBack(t *testing.T) {
	advice := InvestableAmount(d("50000"), d("20000"), "yolo", true, false)
	assert.True(t, advice.RiskFactor.Equal(d("0.5")), "unknown profile should use the balanced factor")
}

func TestAllocationTemplatesSumTo100(t *testing.T) {
	for profile, template := range allocationTemplates {
		total := 0
		for _, pct := range template {
			total += pct
		}
		assert.Equal(t, 100, total, "profile %s", profile)
	}
}

func TestRecommendPortfolio(t *testing.T) {
	rec := RecommendPortfolio(d("10000"), RiskBalanced)

	require.Len(t, rec.Allocation, 5)
	assert.True(t, rec.Allocation["etf"].Amount.Equal(d("4500")))
	assert.Equal(t, 35, rec.Allocation["stock"].Percentage)
	assert.NotEmpty(t, rec.ETFRecommendations)
}
