package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"bookkeeping-server/src/db"
	dbsql "bookkeeping-server/src/db/sql"
	"bookkeeping-server/src/twse"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// fetchQuotes resolves quotes for symbols, serving from the short-TTL cache
// where possible and batching the cache misses into one exchange request.
// A failed exchange call degrades to whatever the cache had.
func fetchQuotes(ctx context.Context, client *twse.Client, symbols []string) map[string]twse.Quote {
	quotes := make(map[string]twse.Quote, len(symbols))
	var missing []string
	for _, s := range symbols {
		if _, seen := quotes[s]; seen {
			continue
		}
		if cached, ok := db.GetQuoteCache("quote:" + s); ok {
			if q, ok := cached.(twse.Quote); ok {
				quotes[s] = q
				continue
			}
		}
		missing = append(missing, s)
	}

	if len(missing) == 0 {
		return quotes
	}
	fetched, err := client.GetQuotes(ctx, missing)
	if err != nil {
		log.Printf("ERROR: Failed to fetch quotes for %v: %v", missing, err)
		return quotes
	}
	for _, q := range fetched {
		quotes[q.Symbol] = q
		if q.Success {
			db.SetQuoteCache("quote:"+q.Symbol, q)
		}
	}
	return quotes
}

func GetStockQuote(client *twse.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := chi.URLParam(r, "symbol")
		if symbol == "" {
			http.Error(w, "symbol is required", http.StatusBadRequest)
			return
		}

		quotes := fetchQuotes(r.Context(), client, []string{symbol})
		quote, ok := quotes[symbol]
		if !ok {
			http.Error(w, "quote service unavailable", http.StatusBadGateway)
			return
		}
		if !quote.Success {
			http.Error(w, "no quote for symbol", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(quote)
	}
}

func SearchStocks(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := r.URL.Query().Get("q")
		if keyword == "" {
			http.Error(w, "q is required", http.StatusBadRequest)
			return
		}
		limit := 20
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 100 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		entries, err := dbsql.SearchStockCatalog(r.Context(), pool, keyword, limit)
		if err != nil {
			log.Printf("ERROR: Failed to search stock catalog for %q: %v", keyword, err)
			http.Error(w, "failed to search stocks", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []dbsql.CatalogEntry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}
