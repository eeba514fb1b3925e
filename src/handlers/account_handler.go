package handlers

import (
	db "bookkeeping-server/src/db/sql"
	"bookkeeping-server/src/models"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string           `json:"name"`
			Type        string           `json:"type"`
			Balance     *decimal.Decimal `json:"balance"`
			Currency    string           `json:"currency"`
			Description *string          `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create account request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Type == "" {
			http.Error(w, "name and type are required", http.StatusBadRequest)
			return
		}
		balance := decimal.Zero
		if req.Balance != nil {
			balance = *req.Balance
		}
		currency := req.Currency
		if currency == "" {
			currency = "TWD"
		}
		account := &models.Account{
			Name:        req.Name,
			Type:        req.Type,
			Balance:     balance,
			Currency:    currency,
			Description: req.Description,
		}
		created, err := db.CreateAccount(r.Context(), pool, account)
		if err != nil {
			log.Printf("ERROR: Failed to create account: %v", err)
			http.Error(w, "failed to create account", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created account id %d (%s)", created.ID, created.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAccountByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountIDStr := chi.URLParam(r, "account_id")
		accountID, err := strconv.Atoi(accountIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid account id param: %s", accountIDStr)
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}
		account, err := db.GetAccountByID(r.Context(), pool, accountID)
		if err != nil {
			log.Printf("ERROR: Account id %d not found: %v", accountID, err)
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(account)
	}
}

func GetAllAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := db.GetAllAccounts(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get accounts: %v", err)
			http.Error(w, "failed to get accounts", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

func UpdateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountIDStr := chi.URLParam(r, "account_id")
		accountID, err := strconv.Atoi(accountIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid account id param: %s", accountIDStr)
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}
		existing, err := db.GetAccountByID(r.Context(), pool, accountID)
		if err != nil {
			log.Printf("ERROR: Account id %d not found: %v", accountID, err)
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		var req struct {
			Name        *string          `json:"name"`
			Type        *string          `json:"type"`
			Balance     *decimal.Decimal `json:"balance"`
			Currency    *string          `json:"currency"`
			Description *string          `json:"description"`
			IsActive    *bool            `json:"is_active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update account request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Type != nil {
			existing.Type = *req.Type
		}
		if req.Balance != nil {
			existing.Balance = *req.Balance
		}
		if req.Currency != nil {
			existing.Currency = *req.Currency
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}
		updated, err := db.UpdateAccount(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update account id %d: %v", accountID, err)
			http.Error(w, "failed to update account", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated account id %d", updated.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountIDStr := chi.URLParam(r, "account_id")
		accountID, err := strconv.Atoi(accountIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid account id param: %s", accountIDStr)
			http.Error(w, "invalid account id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteAccount(r.Context(), pool, accountID); err != nil {
			log.Printf("ERROR: Failed to delete account id %d: %v", accountID, err)
			http.Error(w, "failed to delete account", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted account id %d", accountID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "account deleted"})
	}
}
