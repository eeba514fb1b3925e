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

func CreateTransaction(pool *pgxpool.Pool, rules *finance.RuleTable) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AccountID   int             `json:"account_id"`
			CategoryID  *int            `json:"category_id"`
			Date        string          `json:"date"`
			Description string          `json:"description"`
			Amount      decimal.Decimal `json:"amount"`
			Type        string          `json:"type"`
			Notes       *string         `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.AccountID == 0 || req.Description == "" || !util.ValidTransactionType(req.Type) {
			http.Error(w, "account_id, description and a valid type are required", http.StatusBadRequest)
			return
		}

		date := models.NewDate(time.Now().UTC())
		if req.Date != "" {
			parsed, err := models.ParseDate(req.Date)
			if err != nil {
				http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = parsed
		}

		categoryID := req.CategoryID
		if categoryID == nil {
			if id, ok := rules.Categorize(req.Description, &req.Amount); ok {
				categoryID = &id
				log.Printf("INFO: Auto-categorized transaction %q as category %d", req.Description, id)
			} else {
				id, err := db.GetDefaultCategoryID(r.Context(), pool, req.Type)
				if err != nil {
					log.Printf("ERROR: Failed to resolve default category: %v", err)
					http.Error(w, "failed to create transaction", http.StatusInternalServerError)
					return
				}
				categoryID = &id
			}
		}

		txn := &models.Transaction{
			AccountID:   req.AccountID,
			CategoryID:  categoryID,
			Date:        date,
			Description: req.Description,
			Amount:      req.Amount,
			Type:        req.Type,
			Notes:       req.Notes,
		}
		created, err := db.CreateTransaction(r.Context(), pool, txn)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction: %v", err)
			http.Error(w, "failed to create transaction", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created transaction id %d (%s %s)", created.ID, created.Type, created.Amount)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionIDStr := chi.URLParam(r, "transaction_id")
		transactionID, err := strconv.Atoi(transactionIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", transactionIDStr)
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		txn, err := db.GetTransactionByID(r.Context(), pool, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found: %v", transactionID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(txn)
	}
}

func ListTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter db.TransactionFilter
		q := r.URL.Query()

		if t := q.Get("type"); t != "" {
			if !util.ValidTransactionType(t) {
				http.Error(w, "invalid type filter", http.StatusBadRequest)
				return
			}
			filter.Type = t
		}
		if s := q.Get("account_id"); s != "" {
			id, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "invalid account_id filter", http.StatusBadRequest)
				return
			}
			filter.AccountID = id
		}
		if s := q.Get("category_id"); s != "" {
			id, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "invalid category_id filter", http.StatusBadRequest)
				return
			}
			filter.CategoryID = id
		}
		if s := q.Get("start_date"); s != "" {
			d, err := models.ParseDate(s)
			if err != nil {
				http.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.StartDate = &d
		}
		if s := q.Get("end_date"); s != "" {
			d, err := models.ParseDate(s)
			if err != nil {
				http.Error(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.EndDate = &d
		}

		txns, err := db.ListTransactions(r.Context(), pool, filter)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions: %v", err)
			http.Error(w, "failed to list transactions", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(txns)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionIDStr := chi.URLParam(r, "transaction_id")
		transactionID, err := strconv.Atoi(transactionIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", transactionIDStr)
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		existing, err := db.GetTransactionByID(r.Context(), pool, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found: %v", transactionID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		var req struct {
			AccountID   *int             `json:"account_id"`
			CategoryID  *int             `json:"category_id"`
			Date        *string          `json:"date"`
			Description *string          `json:"description"`
			Amount      *decimal.Decimal `json:"amount"`
			Type        *string          `json:"type"`
			Notes       *string          `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.AccountID != nil {
			existing.AccountID = *req.AccountID
		}
		if req.CategoryID != nil {
			existing.CategoryID = req.CategoryID
		}
		if req.Date != nil {
			d, err := models.ParseDate(*req.Date)
			if err != nil {
				http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			existing.Date = d
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Amount != nil {
			existing.Amount = *req.Amount
		}
		if req.Type != nil {
			if !util.ValidTransactionType(*req.Type) {
				http.Error(w, "invalid type", http.StatusBadRequest)
				return
			}
			existing.Type = *req.Type
		}
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		updated, err := db.UpdateTransaction(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction id %d: %v", transactionID, err)
			http.Error(w, "failed to update transaction", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated transaction id %d", updated.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionIDStr := chi.URLParam(r, "transaction_id")
		transactionID, err := strconv.Atoi(transactionIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid transaction id param: %s", transactionIDStr)
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteTransaction(r.Context(), pool, transactionID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d: %v", transactionID, err)
			http.Error(w, "failed to delete transaction", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted transaction id %d", transactionID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "transaction deleted"})
	}
}

func GetTransactionSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := db.GetTransactionSummary(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get transaction summary: %v", err)
			http.Error(w, "failed to get transaction summary", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}
