package handlers

import (
	db "bookkeeping-server/src/db/sql"
	"bookkeeping-server/src/finance"
	"bookkeeping-server/src/models"
	"bookkeeping-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CategoryID int             `json:"category_id"`
			Name       string          `json:"name"`
			Amount     decimal.Decimal `json:"amount"`
			Period     string          `json:"period"`
			StartDate  string          `json:"start_date"`
			EndDate    *string         `json:"end_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.CategoryID == 0 || req.Name == "" || !util.ValidBudgetPeriod(req.Period) {
			http.Error(w, "category_id, name and a valid period are required", http.StatusBadRequest)
			return
		}
		startDate, err := models.ParseDate(req.StartDate)
		if err != nil {
			http.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		var endDate *models.Date
		if req.EndDate != nil {
			d, err := models.ParseDate(*req.EndDate)
			if err != nil {
				http.Error(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			endDate = &d
		}
		budget := &models.Budget{
			CategoryID: req.CategoryID,
			Name:       req.Name,
			Amount:     req.Amount,
			Period:     req.Period,
			StartDate:  startDate,
			EndDate:    endDate,
		}
		created, err := db.CreateBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to create budget: %v", err)
			http.Error(w, "failed to create budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created budget id %d (%s, category %d)", created.ID, created.Name, created.CategoryID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

// GetAllBudgets evaluates the active budget set and applies the resulting
// lifecycle mutations before responding: expired-unmet budgets are pruned
// and budgets that reached their cap get the completed status persisted.
// The listing is therefore deliberately not idempotent; a pruned budget is
// gone on the next call.
func GetAllBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.ListBudgetsWithSpend(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to list budgets: %v", err)
			http.Error(w, "failed to list budgets", http.StatusInternalServerError)
			return
		}

		display, toDelete, toComplete := finance.EvaluateBudgets(rows, time.Now().UTC())

		if err := db.DeleteBudgets(r.Context(), pool, toDelete); err != nil {
			log.Printf("ERROR: Failed to prune expired budgets %v: %v", toDelete, err)
			http.Error(w, "failed to list budgets", http.StatusInternalServerError)
			return
		}
		if len(toDelete) > 0 {
			log.Printf("INFO: Pruned %d expired unmet budgets: %v", len(toDelete), toDelete)
		}
		if err := db.CompleteBudgets(r.Context(), pool, toComplete); err != nil {
			log.Printf("ERROR: Failed to mark budgets completed %v: %v", toComplete, err)
			http.Error(w, "failed to list budgets", http.StatusInternalServerError)
			return
		}
		if len(toComplete) > 0 {
			log.Printf("INFO: Marked %d budgets completed: %v", len(toComplete), toComplete)
		}

		if display == nil {
			display = []finance.BudgetStatus{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(display)
	}
}

func GetBudgetByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		budget, err := db.GetBudgetByID(r.Context(), pool, budgetID)
		if err != nil {
			log.Printf("ERROR: Budget id %d not found: %v", budgetID, err)
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}
		spent, err := db.SumExpenseForBudget(r.Context(), pool, budget.CategoryID, budget.StartDate, budget.EndDate)
		if err != nil {
			log.Printf("ERROR: Failed to sum spend for budget id %d: %v", budgetID, err)
			http.Error(w, "failed to get budget", http.StatusInternalServerError)
			return
		}

		resp := struct {
			*models.Budget
			Spent        decimal.Decimal `json:"spent"`
			Remaining    decimal.Decimal `json:"remaining"`
			UsagePercent decimal.Decimal `json:"usage_percent"`
		}{
			Budget:       budget,
			Spent:        spent,
			Remaining:    budget.Amount.Sub(spent),
			UsagePercent: finance.UsagePercent(spent, budget.Amount),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		existing, err := db.GetBudgetByID(r.Context(), pool, budgetID)
		if err != nil {
			log.Printf("ERROR: Budget id %d not found: %v", budgetID, err)
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}
		var req struct {
			CategoryID *int             `json:"category_id"`
			Name       *string          `json:"name"`
			Amount     *decimal.Decimal `json:"amount"`
			Period     *string          `json:"period"`
			StartDate  *string          `json:"start_date"`
			EndDate    *string          `json:"end_date"`
			IsActive   *bool            `json:"is_active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.CategoryID != nil {
			existing.CategoryID = *req.CategoryID
		}
		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Amount != nil {
			existing.Amount = *req.Amount
		}
		if req.Period != nil {
			if !util.ValidBudgetPeriod(*req.Period) {
				http.Error(w, "invalid period", http.StatusBadRequest)
				return
			}
			existing.Period = *req.Period
		}
		if req.StartDate != nil {
			d, err := models.ParseDate(*req.StartDate)
			if err != nil {
				http.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			existing.StartDate = d
		}
		if req.EndDate != nil {
			d, err := models.ParseDate(*req.EndDate)
			if err != nil {
				http.Error(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			existing.EndDate = &d
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}
		updated, err := db.UpdateBudget(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update budget id %d: %v", budgetID, err)
			http.Error(w, "failed to update budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated budget id %d", updated.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		budgetIDStr := chi.URLParam(r, "budget_id")
		budgetID, err := strconv.Atoi(budgetIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid budget id param: %s", budgetIDStr)
			http.Error(w, "invalid budget id", http.StatusBadRequest)
			return
		}
		if err := db.DeactivateBudget(r.Context(), pool, budgetID); err != nil {
			log.Printf("ERROR: Failed to delete budget id %d: %v", budgetID, err)
			http.Error(w, "failed to delete budget", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted budget id %d", budgetID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "budget deleted"})
	}
}
