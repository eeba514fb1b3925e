package handlers

import (
	db "bookkeeping-server/src/db/sql"
	"bookkeeping-server/src/finance"
	"bookkeeping-server/src/models"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AssessRisk runs the investable-amount assessment, attaches a portfolio
// recommendation when there is anything to invest, and records the advice.
func AssessRisk(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MonthlyIncome      decimal.Decimal  `json:"monthly_income"`
			MonthlyExpense     decimal.Decimal  `json:"monthly_expense"`
			MonthlySavingsGoal *decimal.Decimal `json:"monthly_savings_goal"`
			RiskProfile        string           `json:"risk_profile"`
			HasEmergencyFund   bool             `json:"has_emergency_fund"`
			HasDebt            bool             `json:"has_debt"`
			InvestmentHorizon  *string          `json:"investment_horizon"`
			LossTolerance      *string          `json:"loss_tolerance"`
			RiskScore          *int             `json:"risk_score"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode risk assessment request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !finance.ValidRiskProfile(req.RiskProfile) {
			http.Error(w, "risk_profile must be conservative, balanced or aggressive", http.StatusBadRequest)
			return
		}

		savingsGoal := decimal.Zero
		if req.MonthlySavingsGoal != nil {
			savingsGoal = *req.MonthlySavingsGoal
		}
		disposable := req.MonthlyIncome.Sub(req.MonthlyExpense)

		advice := finance.InvestableAmount(disposable, savingsGoal, req.RiskProfile, req.HasEmergencyFund, req.HasDebt)

		var recommendation *finance.PortfolioRecommendation
		if advice.RecommendedAmount.IsPositive() {
			rec := finance.RecommendPortfolio(advice.RecommendedAmount, req.RiskProfile)
			recommendation = &rec
		}

		record := &db.RiskAssessmentRecord{
			Date:              models.NewDate(time.Now().UTC()),
			RiskProfile:       req.RiskProfile,
			InvestmentHorizon: req.InvestmentHorizon,
			LossTolerance:     req.LossTolerance,
			RiskScore:         req.RiskScore,
			Allocation:        advice.Allocation,
			MonthlyIncome:     &req.MonthlyIncome,
			MonthlyExpense:    &req.MonthlyExpense,
			HasDebt:           req.HasDebt,
			RecommendedAmount: advice.RecommendedAmount,
		}
		if err := db.InsertRiskAssessment(r.Context(), pool, record); err != nil {
			log.Printf("ERROR: Failed to store risk assessment: %v", err)
			http.Error(w, "failed to store risk assessment", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Stored risk assessment (%s, recommended %s)", req.RiskProfile, advice.RecommendedAmount)

		resp := struct {
			finance.InvestmentAdvice
			Recommendation *finance.PortfolioRecommendation `json:"recommendation,omitempty"`
		}{
			InvestmentAdvice: advice,
			Recommendation:   recommendation,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
