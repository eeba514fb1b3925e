package handlers

import (
	"bookkeeping-server/src/db"
	"encoding/json"
	"log"
	"net/http"
)

// ClearQuoteCache drops every cached quote so the next lookups hit the
// exchange again. Useful after market open when stale pre-open quotes linger.
func ClearQuoteCache() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		db.ClearAllQuoteCaches()
		log.Println("INFO: Cleared quote cache")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "quote cache cleared"})
	}
}
