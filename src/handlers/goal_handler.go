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

func CreateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name          string           `json:"name"`
			TargetAmount  decimal.Decimal  `json:"target_amount"`
			CurrentAmount *decimal.Decimal `json:"current_amount"`
			Deadline      *string          `json:"deadline"`
			Priority      *int             `json:"priority"`
			Description   *string          `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create goal request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || !req.TargetAmount.IsPositive() {
			http.Error(w, "name and a positive target_amount are required", http.StatusBadRequest)
			return
		}
		current := decimal.Zero
		if req.CurrentAmount != nil {
			current = *req.CurrentAmount
		}
		var deadline *models.Date
		if req.Deadline != nil {
			d, err := models.ParseDate(*req.Deadline)
			if err != nil {
				http.Error(w, "invalid deadline, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			deadline = &d
		}
		priority := 3
		if req.Priority != nil {
			if !util.ValidPriority(*req.Priority) {
				http.Error(w, "priority must be between 1 and 5", http.StatusBadRequest)
				return
			}
			priority = *req.Priority
		}

		goal := &models.FinancialGoal{
			Name:          req.Name,
			TargetAmount:  req.TargetAmount,
			CurrentAmount: current,
			Deadline:      deadline,
			Priority:      priority,
			Status:        finance.ResolveGoalStatus(current, req.TargetAmount, "", models.GoalInProgress),
			Description:   req.Description,
		}
		created, err := db.CreateGoal(r.Context(), pool, goal)
		if err != nil {
			log.Printf("ERROR: Failed to create goal: %v", err)
			http.Error(w, "failed to create goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created goal id %d (%s, target %s)", created.ID, created.Name, created.TargetAmount)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAllGoals(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status != "" && !util.ValidGoalStatus(status) {
			http.Error(w, "invalid status filter", http.StatusBadRequest)
			return
		}
		goals, err := db.ListGoals(r.Context(), pool, status)
		if err != nil {
			log.Printf("ERROR: Failed to list goals: %v", err)
			http.Error(w, "failed to list goals", http.StatusInternalServerError)
			return
		}
		if goals == nil {
			goals = []models.FinancialGoal{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goals)
	}
}

func GetGoalByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		goal, err := db.GetGoalByID(r.Context(), pool, goalID)
		if err != nil {
			log.Printf("ERROR: Goal id %d not found: %v", goalID, err)
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		progress := finance.GoalProgressReport(finance.GoalRow{
			ID:            goal.ID,
			Name:          goal.Name,
			TargetAmount:  goal.TargetAmount,
			CurrentAmount: goal.CurrentAmount,
			Deadline:      goal.Deadline,
			Priority:      goal.Priority,
			Status:        goal.Status,
		}, time.Now().UTC())

		resp := struct {
			*models.FinancialGoal
			Progress finance.GoalProgress `json:"progress"`
		}{
			FinancialGoal: goal,
			Progress:      progress,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func UpdateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		existing, err := db.GetGoalByID(r.Context(), pool, goalID)
		if err != nil {
			log.Printf("ERROR: Goal id %d not found: %v", goalID, err)
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		var req struct {
			Name          *string          `json:"name"`
			TargetAmount  *decimal.Decimal `json:"target_amount"`
			CurrentAmount *decimal.Decimal `json:"current_amount"`
			Deadline      *string          `json:"deadline"`
			Priority      *int             `json:"priority"`
			Status        *string          `json:"status"`
			Description   *string          `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update goal request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.TargetAmount != nil {
			existing.TargetAmount = *req.TargetAmount
		}
		if req.CurrentAmount != nil {
			existing.CurrentAmount = *req.CurrentAmount
		}
		if req.Deadline != nil {
			d, err := models.ParseDate(*req.Deadline)
			if err != nil {
				http.Error(w, "invalid deadline, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			existing.Deadline = &d
		}
		if req.Priority != nil {
			if !util.ValidPriority(*req.Priority) {
				http.Error(w, "priority must be between 1 and 5", http.StatusBadRequest)
				return
			}
			existing.Priority = *req.Priority
		}
		requested := ""
		if req.Status != nil {
			if !util.ValidGoalStatus(*req.Status) {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			requested = *req.Status
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		existing.Status = finance.ResolveGoalStatus(existing.CurrentAmount, existing.TargetAmount, requested, existing.Status)

		updated, err := db.UpdateGoal(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update goal id %d: %v", goalID, err)
			http.Error(w, "failed to update goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated goal id %d (status %s)", updated.ID, updated.Status)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

// AddGoalMoney deposits an amount toward a goal and promotes its status to
// completed once the target is reached.
func AddGoalMoney(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		existing, err := db.GetGoalByID(r.Context(), pool, goalID)
		if err != nil {
			log.Printf("ERROR: Goal id %d not found: %v", goalID, err)
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		var req struct {
			Amount decimal.Decimal `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode add goal money request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !req.Amount.IsPositive() {
			http.Error(w, "amount must be positive", http.StatusBadRequest)
			return
		}

		newAmount := existing.CurrentAmount.Add(req.Amount)
		status := finance.ResolveGoalStatus(newAmount, existing.TargetAmount, "", existing.Status)

		updated, err := db.UpdateGoalAmount(r.Context(), pool, goalID, newAmount, status)
		if err != nil {
			log.Printf("ERROR: Failed to add money to goal id %d: %v", goalID, err)
			http.Error(w, "failed to add money to goal", http.StatusInternalServerError)
			return
		}
		if status == models.GoalCompleted && existing.Status != models.GoalCompleted {
			log.Printf("INFO: Goal id %d reached its target and was marked completed", goalID)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goalIDStr := chi.URLParam(r, "goal_id")
		goalID, err := strconv.Atoi(goalIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid goal id param: %s", goalIDStr)
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteGoal(r.Context(), pool, goalID); err != nil {
			log.Printf("ERROR: Failed to delete goal id %d: %v", goalID, err)
			http.Error(w, "failed to delete goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted goal id %d", goalID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "goal deleted"})
	}
}
