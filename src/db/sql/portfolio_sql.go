package db

import (
	"bookkeeping-server/src/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateInvestmentAccount(ctx context.Context, pool *pgxpool.Pool, account *models.InvestmentAccount) (*models.InvestmentAccount, error) {
	query := `
		INSERT INTO investment_accounts (name, account_type, broker, currency, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, account_type, broker, currency, description, is_active, created_at
	`
	var a models.InvestmentAccount
	err := pool.QueryRow(ctx, query, account.Name, account.AccountType, account.Broker, account.Currency, account.Description).
		Scan(&a.ID, &a.Name, &a.AccountType, &a.Broker, &a.Currency, &a.Description, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func GetAllInvestmentAccounts(ctx context.Context, pool *pgxpool.Pool) ([]models.InvestmentAccount, error) {
	query := `
		SELECT id, name, account_type, broker, currency, description, is_active, created_at
		FROM investment_accounts
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.InvestmentAccount
	for rows.Next() {
		var a models.InvestmentAccount
		err := rows.Scan(&a.ID, &a.Name, &a.AccountType, &a.Broker, &a.Currency, &a.Description, &a.IsActive, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetHoldings lists open positions joined with their account name.
// accountID 0 means all accounts.
func GetHoldings(ctx context.Context, pool *pgxpool.Pool, accountID int) ([]models.Holding, error) {
	query := `
		SELECT h.id, h.account_id, h.symbol, h.name, h.quantity, h.average_cost,
		       h.asset_type, h.market, h.created_at, ia.name AS account_name
		FROM holdings h
		JOIN investment_accounts ia ON h.account_id = ia.id
		WHERE h.quantity > 0 AND ($1 = 0 OR h.account_id = $1)
		ORDER BY h.asset_type, h.symbol
	`
	rows, err := pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		err := rows.Scan(&h.ID, &h.AccountID, &h.Symbol, &h.Name, &h.Quantity, &h.AverageCost,
			&h.AssetType, &h.Market, &h.CreatedAt, &h.AccountName)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// GetActiveHoldings lists open positions across active accounts only, for
// the portfolio summary.
func GetActiveHoldings(ctx context.Context, pool *pgxpool.Pool) ([]models.Holding, error) {
	query := `
		SELECT h.id, h.account_id, h.symbol, h.name, h.quantity, h.average_cost,
		       h.asset_type, h.market, h.created_at, ia.name AS account_name
		FROM holdings h
		JOIN investment_accounts ia ON h.account_id = ia.id
		WHERE h.quantity > 0 AND ia.is_active = TRUE
		ORDER BY h.asset_type, h.symbol
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		err := rows.Scan(&h.ID, &h.AccountID, &h.Symbol, &h.Name, &h.Quantity, &h.AverageCost,
			&h.AssetType, &h.Market, &h.CreatedAt, &h.AccountName)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func GetHoldingByID(ctx context.Context, pool *pgxpool.Pool, holdingID int) (*models.Holding, error) {
	query := `
		SELECT id, account_id, symbol, name, quantity, average_cost, asset_type, market, created_at
		FROM holdings WHERE id = $1
	`
	var h models.Holding
	err := pool.QueryRow(ctx, query, holdingID).
		Scan(&h.ID, &h.AccountID, &h.Symbol, &h.Name, &h.Quantity, &h.AverageCost, &h.AssetType, &h.Market, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// BuyHolding records a purchase. An existing position in the same symbol is
// merged into a new average cost; otherwise a new holding row is created.
// The investment transaction is written in the same database transaction.
func BuyHolding(ctx context.Context, pool *pgxpool.Pool, holding *models.Holding, price, fee, tax decimal.Decimal, date models.Date) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var holdingID int
	var oldQty, oldCost decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT id, quantity, average_cost FROM holdings WHERE account_id = $1 AND symbol = $2 FOR UPDATE`,
		holding.AccountID, holding.Symbol).Scan(&holdingID, &oldQty, &oldCost)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	if err == nil {
		totalQty := oldQty.Add(holding.Quantity)
		if !totalQty.IsPositive() {
			return 0, fmt.Errorf("invalid resulting quantity %s", totalQty)
		}
		newAvgCost := oldQty.Mul(oldCost).Add(holding.Quantity.Mul(price)).Div(totalQty)
		_, err = tx.Exec(ctx,
			`UPDATE holdings SET quantity = $1, average_cost = $2, updated_at = NOW() WHERE id = $3`,
			totalQty, newAvgCost, holdingID)
		if err != nil {
			return 0, err
		}
	} else {
		err = tx.QueryRow(ctx, `
			INSERT INTO holdings (account_id, symbol, name, quantity, average_cost, asset_type, market)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, holding.AccountID, holding.Symbol, holding.Name, holding.Quantity, price, holding.AssetType, holding.Market).Scan(&holdingID)
		if err != nil {
			return 0, err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO investment_transactions (holding_id, transaction_type, quantity, price, fee, tax, transaction_date)
		VALUES ($1, 'buy', $2, $3, $4, $5, $6)
	`, holdingID, holding.Quantity, price, fee, tax, date)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return holdingID, nil
}

// SellHolding reduces a position and records the sale. Selling more than the
// held quantity is rejected.
func SellHolding(ctx context.Context, pool *pgxpool.Pool, holdingID int, quantity, price, fee, tax decimal.Decimal, date models.Date) (decimal.Decimal, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	var currentQty decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT quantity FROM holdings WHERE id = $1 FOR UPDATE`, holdingID).Scan(&currentQty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("holding not found: %w", err)
	}
	if quantity.GreaterThan(currentQty) {
		return decimal.Zero, fmt.Errorf("sell quantity %s exceeds held quantity %s", quantity, currentQty)
	}

	remaining := currentQty.Sub(quantity)
	_, err = tx.Exec(ctx, `UPDATE holdings SET quantity = $1, updated_at = NOW() WHERE id = $2`, remaining, holdingID)
	if err != nil {
		return decimal.Zero, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO investment_transactions (holding_id, transaction_type, quantity, price, fee, tax, transaction_date)
		VALUES ($1, 'sell', $2, $3, $4, $5, $6)
	`, holdingID, quantity, price, fee, tax, date)
	if err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}
	return remaining, nil
}

// SumInvestmentFlowSince totals buy cost (quantity*price+fee), sell proceeds
// (quantity*price-fee) or dividends (quantity*price) since a date.
func SumInvestmentFlowSince(ctx context.Context, pool *pgxpool.Pool, transactionType string, since models.Date) (decimal.Decimal, error) {
	var expr string
	switch transactionType {
	case "buy":
		expr = "quantity * price + fee"
	case "sell":
		expr = "quantity * price - fee"
	case "dividend":
		expr = "quantity * price"
	default:
		return decimal.Zero, fmt.Errorf("unknown investment transaction type %q", transactionType)
	}
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(%s), 0)
		FROM investment_transactions
		WHERE transaction_type = $1 AND transaction_date >= $2
	`, expr)
	var sum decimal.Decimal
	err := pool.QueryRow(ctx, query, transactionType, since).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func CountInvestmentTransactionsSince(ctx context.Context, pool *pgxpool.Pool, since models.Date) (int, error) {
	var count int
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM investment_transactions WHERE transaction_date >= $1`, since).Scan(&count)
	return count, err
}

func RecentInvestmentTransactions(ctx context.Context, pool *pgxpool.Pool, limit int) ([]models.InvestmentTransaction, error) {
	query := `
		SELECT it.id, it.holding_id, it.transaction_type, it.quantity, it.price, it.fee, it.tax,
		       it.transaction_date, h.symbol, h.name, it.created_at
		FROM investment_transactions it
		JOIN holdings h ON it.holding_id = h.id
		ORDER BY it.created_at DESC
		LIMIT $1
	`
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []models.InvestmentTransaction
	for rows.Next() {
		var t models.InvestmentTransaction
		err := rows.Scan(&t.ID, &t.HoldingID, &t.Type, &t.Quantity, &t.Price, &t.Fee, &t.Tax,
			&t.Date, &t.Symbol, &t.Name, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
