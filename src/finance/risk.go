package finance

import (
	"github.com/shopspring/decimal"
)

// Risk profiles.
const (
	RiskConservative = "conservative"
	RiskBalanced     = "balanced"
	RiskAggressive   = "aggressive"
)

type riskFactor struct {
	K     decimal.Decimal
	Label string
}

var riskFactors = map[string]riskFactor{
	RiskConservative: {decimal.NewFromFloat(0.25), "保守型"},
	RiskBalanced:     {decimal.NewFromFloat(0.5), "穩健型"},
	RiskAggressive:   {decimal.NewFromFloat(0.75), "積極型"},
}

// allocationTemplates give the target percentage per asset type for each
// risk profile. Percentages sum to 100.
var allocationTemplates = map[string]map[string]int{
	RiskConservative: {"stock": 15, "etf": 35, "bond": 35, "fund": 10, "cash": 5},
	RiskBalanced:     {"stock": 35, "etf": 45, "bond": 10, "fund": 5, "cash": 5},
	RiskAggressive:   {"stock": 60, "etf": 30, "bond": 5, "fund": 3, "cash": 2},
}

// ValidRiskProfile reports whether p names a known risk profile.
func ValidRiskProfile(p string) bool {
	_, ok := riskFactors[p]
	return ok
}

// InvestmentAdvice is the result of an investable-amount assessment.
type InvestmentAdvice struct {
	RecommendedAmount     decimal.Decimal `json:"recommended_amount"`
	AvailableAfterSavings decimal.Decimal `json:"available_after_savings"`
	RiskProfile           string          `json:"risk_profile"`
	RiskProfileLabel      string          `json:"risk_profile_label"`
	RiskFactor            decimal.Decimal `json:"risk_factor"`
	Warnings              []string        `json:"warnings"`
	Allocation            map[string]int  `json:"allocation"`
}

// InvestableAmount recommends how much of the monthly disposable income to
// invest after the savings goal is funded. The risk profile's factor is
// halved when the user carries debt or has no emergency fund; warnings are
// cumulative. An unknown profile falls back to balanced.
func InvestableAmount(monthlyDisposable, monthlySavingsGoal decimal.Decimal, riskProfile string, hasEmergencyFund, hasDebt bool) InvestmentAdvice {
	var warnings []string
	if !hasEmergencyFund {
		warnings = append(warnings, "建議先建立3-6個月的緊急預備金再開始投資")
	}
	if hasDebt {
		warnings = append(warnings, "建議優先償還高利率負債")
	}

	available := monthlyDisposable.Sub(monthlySavingsGoal)
	if !available.IsPositive() {
		return InvestmentAdvice{
			RecommendedAmount: decimal.Zero,
			RiskProfile:       riskProfile,
			Warnings:          append(warnings, "每月可支配金額不足以同時儲蓄和投資"),
		}
	}

	factor, ok := riskFactors[riskProfile]
	if !ok {
		factor = riskFactors[RiskBalanced]
	}
	k := factor.K
	if hasDebt || !hasEmergencyFund {
		k = k.Div(decimal.NewFromInt(2))
	}

	return InvestmentAdvice{
		RecommendedAmount:     available.Mul(k).Round(0),
		AvailableAfterSavings: available,
		RiskProfile:           riskProfile,
		RiskProfileLabel:      factor.Label,
		RiskFactor:            k,
		Warnings:              warnings,
		Allocation:            allocationTemplates[riskProfile],
	}
}

// AllocationSlice is one asset type's share of a recommended portfolio.
type AllocationSlice struct {
	Percentage int             `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// PortfolioRecommendation breaks an investable amount down across asset
// types according to the profile's allocation template.
type PortfolioRecommendation struct {
	InvestableAmount   decimal.Decimal            `json:"investable_amount"`
	RiskProfile        string                     `json:"risk_profile"`
	Allocation         map[string]AllocationSlice `json:"allocation"`
	ETFRecommendations []ETFRecommendation        `json:"etf_recommendations"`
	Notes              []string                   `json:"notes"`
}

type ETFRecommendation struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

// RecommendPortfolio allocates investableAmount per the profile's template.
// An unknown profile falls back to balanced.
func RecommendPortfolio(investableAmount decimal.Decimal, riskProfile string) PortfolioRecommendation {
	template, ok := allocationTemplates[riskProfile]
	if !ok {
		template = allocationTemplates[RiskBalanced]
	}

	allocation := make(map[string]AllocationSlice, len(template))
	for assetType, pct := range template {
		allocation[assetType] = AllocationSlice{
			Percentage: pct,
			Amount:     investableAmount.Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(0),
		}
	}

	return PortfolioRecommendation{
		InvestableAmount: investableAmount,
		RiskProfile:      riskProfile,
		Allocation:       allocation,
		ETFRecommendations: []ETFRecommendation{
			{"0050", "元大台灣50", "大盤型"},
			{"006208", "富邦台50", "大盤型"},
			{"0056", "元大高股息", "高股息"},
			{"00878", "國泰永續高股息", "高股息ESG"},
		},
		Notes: []string{
			"建議以定期定額方式投入，降低進場時機風險",
			"投資組合應定期檢視，必要時進行再平衡",
			"以上為參考建議，實際投資請依個人情況調整",
		},
	}
}
