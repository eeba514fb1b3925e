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

// GetSuggestions assembles the monthly advisory report: this month's income
// and expense totals, the current budget standings, and the in-progress
// goals feed the suggestion generator. The budget evaluation here is
// read-only; lifecycle mutations only happen on the budget listing.
func GetSuggestions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		monthStart := models.NewDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))

		income, err := db.SumTransactionsByTypeSince(r.Context(), pool, "income", monthStart)
		if err != nil {
			log.Printf("ERROR: Failed to sum monthly income: %v", err)
			http.Error(w, "failed to generate suggestions", http.StatusInternalServerError)
			return
		}
		expense, err := db.SumTransactionsByTypeSince(r.Context(), pool, "expense", monthStart)
		if err != nil {
			log.Printf("ERROR: Failed to sum monthly expense: %v", err)
			http.Error(w, "failed to generate suggestions", http.StatusInternalServerError)
			return
		}

		budgetRows, err := db.ListBudgetsWithSpend(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to list budgets for suggestions: %v", err)
			http.Error(w, "failed to generate suggestions", http.StatusInternalServerError)
			return
		}
		budgets, _, _ := finance.EvaluateBudgets(budgetRows, now)

		goals, err := db.ListGoalRows(r.Context(), pool, models.GoalInProgress)
		if err != nil {
			log.Printf("ERROR: Failed to list goals for suggestions: %v", err)
			http.Error(w, "failed to generate suggestions", http.StatusInternalServerError)
			return
		}

		suggestions := finance.GenerateSuggestions(income, expense, budgets, goals, now)

		resp := struct {
			MonthlyIncome  decimal.Decimal      `json:"monthly_income"`
			MonthlyExpense decimal.Decimal      `json:"monthly_expense"`
			Disposable     decimal.Decimal      `json:"disposable"`
			Suggestions    []finance.Suggestion `json:"suggestions"`
		}{
			MonthlyIncome:  income,
			MonthlyExpense: expense,
			Disposable:     income.Sub(expense),
			Suggestions:    suggestions,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
