package db

import (
	"bookkeeping-server/src/finance"
	"bookkeeping-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (category_id, name, amount, period, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, category_id, name, amount, period, start_date, end_date, status, is_active, created_at, updated_at
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budget.CategoryID, budget.Name, budget.Amount, budget.Period, budget.StartDate, budget.EndDate).
		Scan(&b.ID, &b.CategoryID, &b.Name, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.Status, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, budgetID int) (*models.Budget, error) {
	query := `
		SELECT id, category_id, name, amount, period, start_date, end_date, status, is_active, created_at, updated_at
		FROM budgets WHERE id = $1
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budgetID).
		Scan(&b.ID, &b.CategoryID, &b.Name, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.Status, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SumExpenseForBudget totals the expense transactions that count against a
// budget: same category, dated within the budget's range.
func SumExpenseForBudget(ctx context.Context, pool *pgxpool.Pool, categoryID int, start models.Date, end *models.Date) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE category_id = $1 AND type = 'expense' AND date >= $2
		  AND ($3::date IS NULL OR date <= $3)
	`
	var sum decimal.Decimal
	err := pool.QueryRow(ctx, query, categoryID, start, end).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// ListBudgetsWithSpend reads all active budgets joined with their category
// and spend-to-date, ready for lifecycle evaluation.
func ListBudgetsWithSpend(ctx context.Context, pool *pgxpool.Pool) ([]finance.BudgetRow, error) {
	query := `
		SELECT b.id, b.name, b.category_id, c.name, c.icon, b.amount, b.period,
		       b.start_date, b.end_date, b.status,
		       COALESCE((
		           SELECT SUM(t.amount) FROM transactions t
		           WHERE t.category_id = b.category_id AND t.type = 'expense'
		             AND t.date >= b.start_date
		             AND (b.end_date IS NULL OR t.date <= b.end_date)
		       ), 0) AS spent
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.is_active = TRUE
		ORDER BY b.created_at DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []finance.BudgetRow
	for rows.Next() {
		var row finance.BudgetRow
		err := rows.Scan(&row.ID, &row.Name, &row.CategoryID, &row.CategoryName, &row.CategoryIcon,
			&row.Amount, &row.Period, &row.StartDate, &row.EndDate, &row.Status, &row.Spent)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, row)
	}
	return budgets, rows.Err()
}

func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = $1, name = $2, amount = $3, period = $4, start_date = $5, end_date = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id, category_id, name, amount, period, start_date, end_date, status, is_active, created_at, updated_at
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budget.CategoryID, budget.Name, budget.Amount, budget.Period, budget.StartDate, budget.EndDate, budget.IsActive, budget.ID).
		Scan(&b.ID, &b.CategoryID, &b.Name, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.Status, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeactivateBudget is the user-facing delete: the row stays for history.
func DeactivateBudget(ctx context.Context, pool *pgxpool.Pool, budgetID int) error {
	query := `UPDATE budgets SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, budgetID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("budget not found")
	}
	return nil
}

// DeleteBudgets removes expired-unmet budgets scheduled by the lifecycle
// evaluation. Ids already deleted by a concurrent listing are silently
// skipped; duplicate pruning must be a no-op.
func DeleteBudgets(ctx context.Context, pool *pgxpool.Pool, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := pool.Exec(ctx, `DELETE FROM budgets WHERE id = ANY($1)`, ids)
	return err
}

// CompleteBudgets persists the completed status for the given budgets.
func CompleteBudgets(ctx context.Context, pool *pgxpool.Pool, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := pool.Exec(ctx, `UPDATE budgets SET status = 'completed', updated_at = NOW() WHERE id = ANY($1)`, ids)
	return err
}
