package db

import (
	"bookkeeping-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (name, type, balance, currency, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, type, balance, currency, description, is_active, created_at, updated_at
	`
	var a models.Account
	err := pool.QueryRow(ctx, query, account.Name, account.Type, account.Balance, account.Currency, account.Description).
		Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func GetAccountByID(ctx context.Context, pool *pgxpool.Pool, accountID int) (*models.Account, error) {
	query := `
		SELECT id, name, type, balance, currency, description, is_active, created_at, updated_at
		FROM accounts WHERE id = $1
	`
	var a models.Account
	err := pool.QueryRow(ctx, query, accountID).
		Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func GetAllAccounts(ctx context.Context, pool *pgxpool.Pool) ([]models.Account, error) {
	query := `
		SELECT id, name, type, balance, currency, description, is_active, created_at, updated_at
		FROM accounts WHERE is_active = TRUE
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func UpdateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET name = $1, type = $2, balance = $3, currency = $4, description = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, name, type, balance, currency, description, is_active, created_at, updated_at
	`
	var a models.Account
	err := pool.QueryRow(ctx, query, account.Name, account.Type, account.Balance, account.Currency, account.Description, account.IsActive, account.ID).
		Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAccount deactivates the account; transactions keep referencing it.
func DeleteAccount(ctx context.Context, pool *pgxpool.Pool, accountID int) error {
	query := `UPDATE accounts SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}
