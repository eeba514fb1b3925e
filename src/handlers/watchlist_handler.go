package handlers

import (
	db "bookkeeping-server/src/db/sql"
	"bookkeeping-server/src/models"
	"bookkeeping-server/src/twse"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetWatchlist returns the watchlist with current prices attached. Symbols
// the exchange does not answer for come back without price fields.
func GetWatchlist(pool *pgxpool.Pool, quotes *twse.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := db.GetWatchlist(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get watchlist: %v", err)
			http.Error(w, "failed to get watchlist", http.StatusInternalServerError)
			return
		}

		symbols := make([]string, 0, len(entries))
		for _, e := range entries {
			symbols = append(symbols, e.Symbol)
		}
		prices := fetchQuotes(r.Context(), quotes, symbols)

		for i := range entries {
			if q, ok := prices[entries[i].Symbol]; ok && q.Success {
				price := q.Price
				change := q.Change
				entries[i].CurrentPrice = &price
				entries[i].Change = &change
			}
		}

		if entries == nil {
			entries = []models.WatchlistEntry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

func AddToWatchlist(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.WatchlistEntry
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode add watchlist request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Symbol == "" || req.Name == "" {
			http.Error(w, "symbol and name are required", http.StatusBadRequest)
			return
		}
		created, err := db.AddToWatchlist(r.Context(), pool, &req)
		if err != nil {
			log.Printf("ERROR: Failed to add %s to watchlist: %v", req.Symbol, err)
			http.Error(w, "failed to add to watchlist", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Added %s to watchlist (id %d)", created.Symbol, created.ID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func RemoveFromWatchlist(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		watchlistIDStr := chi.URLParam(r, "watchlist_id")
		watchlistID, err := strconv.Atoi(watchlistIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid watchlist id param: %s", watchlistIDStr)
			http.Error(w, "invalid watchlist id", http.StatusBadRequest)
			return
		}
		if err := db.RemoveFromWatchlist(r.Context(), pool, watchlistID); err != nil {
			log.Printf("ERROR: Failed to remove watchlist entry id %d: %v", watchlistID, err)
			http.Error(w, "failed to remove from watchlist", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Removed watchlist entry id %d", watchlistID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "watchlist entry removed"})
	}
}
