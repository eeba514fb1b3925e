package db

import (
	"bookkeeping-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetWatchlist(ctx context.Context, pool *pgxpool.Pool) ([]models.WatchlistEntry, error) {
	query := `
		SELECT id, symbol, name, alert_price_high, alert_price_low, alert_change_percent, note
		FROM watchlist
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		err := rows.Scan(&e.ID, &e.Symbol, &e.Name, &e.AlertPriceHigh, &e.AlertPriceLow, &e.AlertChangePercent, &e.Note)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func AddToWatchlist(ctx context.Context, pool *pgxpool.Pool, entry *models.WatchlistEntry) (*models.WatchlistEntry, error) {
	query := `
		INSERT INTO watchlist (symbol, name, alert_price_high, alert_price_low, alert_change_percent, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, symbol, name, alert_price_high, alert_price_low, alert_change_percent, note
	`
	var e models.WatchlistEntry
	err := pool.QueryRow(ctx, query, entry.Symbol, entry.Name, entry.AlertPriceHigh, entry.AlertPriceLow, entry.AlertChangePercent, entry.Note).
		Scan(&e.ID, &e.Symbol, &e.Name, &e.AlertPriceHigh, &e.AlertPriceLow, &e.AlertChangePercent, &e.Note)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func RemoveFromWatchlist(ctx context.Context, pool *pgxpool.Pool, watchlistID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM watchlist WHERE id = $1`, watchlistID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("watchlist entry not found")
	}
	return nil
}
