package db

import (
	"bookkeeping-server/src/models"
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RiskAssessmentRecord is the persisted form of one assessment.
type RiskAssessmentRecord struct {
	Date              models.Date
	RiskProfile       string
	InvestmentHorizon *string
	LossTolerance     *string
	RiskScore         *int
	Allocation        map[string]int
	MonthlyIncome     *decimal.Decimal
	MonthlyExpense    *decimal.Decimal
	HasDebt           bool
	RecommendedAmount decimal.Decimal
}

// InsertRiskAssessment stores the advice that was handed to the user, for
// later review.
func InsertRiskAssessment(ctx context.Context, pool *pgxpool.Pool, rec *RiskAssessmentRecord) error {
	allocation, err := json.Marshal(rec.Allocation)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO risk_assessments
			(assessment_date, risk_tolerance, investment_horizon, loss_tolerance,
			 risk_score, recommended_allocation, monthly_income, monthly_expense,
			 has_debt, recommended_investable_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = pool.Exec(ctx, query, rec.Date, rec.RiskProfile, rec.InvestmentHorizon, rec.LossTolerance,
		rec.RiskScore, allocation, rec.MonthlyIncome, rec.MonthlyExpense, rec.HasDebt, rec.RecommendedAmount)
	return err
}
