package db

import (
	"bookkeeping-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (account_id, category_id, date, description, amount, type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, account_id, category_id, date, description, amount, type, notes, created_at, updated_at
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, txn.AccountID, txn.CategoryID, txn.Date, txn.Description, txn.Amount, txn.Type, txn.Notes).
		Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, transactionID int) (*models.Transaction, error) {
	query := `
		SELECT id, account_id, category_id, date, description, amount, type, notes, created_at, updated_at
		FROM transactions WHERE id = $1
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, transactionID).
		Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TransactionFilter narrows ListTransactions. Zero values mean no filter.
type TransactionFilter struct {
	Type       string
	AccountID  int
	CategoryID int
	StartDate  *models.Date
	EndDate    *models.Date
}

func ListTransactions(ctx context.Context, pool *pgxpool.Pool, filter TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, category_id, date, description, amount, type, notes, created_at, updated_at
		FROM transactions
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = 0 OR account_id = $2)
		  AND ($3 = 0 OR category_id = $3)
		  AND ($4::date IS NULL OR date >= $4)
		  AND ($5::date IS NULL OR date <= $5)
		ORDER BY date DESC, id DESC
	`
	rows, err := pool.Query(ctx, query, filter.Type, filter.AccountID, filter.CategoryID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET account_id = $1, category_id = $2, date = $3, description = $4, amount = $5, type = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id, account_id, category_id, date, description, amount, type, notes, created_at, updated_at
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, txn.AccountID, txn.CategoryID, txn.Date, txn.Description, txn.Amount, txn.Type, txn.Notes, txn.ID).
		Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, transactionID int) error {
	query := `DELETE FROM transactions WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, transactionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

// SumTransactionsByTypeSince totals transaction amounts of one type with
// date >= since.
func SumTransactionsByTypeSince(ctx context.Context, pool *pgxpool.Pool, transactionType string, since models.Date) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1 AND date >= $2`
	var sum decimal.Decimal
	err := pool.QueryRow(ctx, query, transactionType, since).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// TransactionSummary holds the all-time income/expense totals.
type TransactionSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}

func GetTransactionSummary(ctx context.Context, pool *pgxpool.Pool) (*TransactionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
	`
	var s TransactionSummary
	err := pool.QueryRow(ctx, query).Scan(&s.TotalIncome, &s.TotalExpense)
	if err != nil {
		return nil, err
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return &s, nil
}
