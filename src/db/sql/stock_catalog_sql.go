package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogEntry is one listed instrument from the stock_catalog table, which
// mirrors the exchange's published code list.
type CatalogEntry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Market string `json:"market"`
}

// SearchStockCatalog matches symbols by prefix and names by substring.
func SearchStockCatalog(ctx context.Context, pool *pgxpool.Pool, keyword string, limit int) ([]CatalogEntry, error) {
	query := `
		SELECT symbol, name, type, market
		FROM stock_catalog
		WHERE symbol ILIKE $1 || '%' OR name LIKE '%' || $1 || '%'
		ORDER BY symbol
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, keyword, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.Symbol, &e.Name, &e.Type, &e.Market); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
