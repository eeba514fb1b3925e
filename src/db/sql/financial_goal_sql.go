package db

import (
	"bookkeeping-server/src/finance"
	"bookkeeping-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.FinancialGoal) (*models.FinancialGoal, error) {
	query := `
		INSERT INTO financial_goals (name, target_amount, current_amount, deadline, priority, status, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, target_amount, current_amount, deadline, priority, status, description, created_at, updated_at
	`
	var g models.FinancialGoal
	err := pool.QueryRow(ctx, query, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.Priority, goal.Status, goal.Description).
		Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Priority, &g.Status, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func GetGoalByID(ctx context.Context, pool *pgxpool.Pool, goalID int) (*models.FinancialGoal, error) {
	query := `
		SELECT id, name, target_amount, current_amount, deadline, priority, status, description, created_at, updated_at
		FROM financial_goals WHERE id = $1
	`
	var g models.FinancialGoal
	err := pool.QueryRow(ctx, query, goalID).
		Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Priority, &g.Status, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGoals returns goals ordered by priority, highest first. Empty status
// means no filter.
func ListGoals(ctx context.Context, pool *pgxpool.Pool, status string) ([]models.FinancialGoal, error) {
	query := `
		SELECT id, name, target_amount, current_amount, deadline, priority, status, description, created_at, updated_at
		FROM financial_goals
		WHERE ($1 = '' OR status = $1)
		ORDER BY priority DESC, id
	`
	rows, err := pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.FinancialGoal
	for rows.Next() {
		var g models.FinancialGoal
		err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Priority, &g.Status, &g.Description, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// ListGoalRows reads goals in the shape the suggestion generator consumes.
func ListGoalRows(ctx context.Context, pool *pgxpool.Pool, status string) ([]finance.GoalRow, error) {
	goals, err := ListGoals(ctx, pool, status)
	if err != nil {
		return nil, err
	}
	rows := make([]finance.GoalRow, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, finance.GoalRow{
			ID:            g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Deadline:      g.Deadline,
			Priority:      g.Priority,
			Status:        g.Status,
		})
	}
	return rows, nil
}

func UpdateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.FinancialGoal) (*models.FinancialGoal, error) {
	query := `
		UPDATE financial_goals
		SET name = $1, target_amount = $2, current_amount = $3, deadline = $4, priority = $5, status = $6, description = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id, name, target_amount, current_amount, deadline, priority, status, description, created_at, updated_at
	`
	var g models.FinancialGoal
	err := pool.QueryRow(ctx, query, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.Priority, goal.Status, goal.Description, goal.ID).
		Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Priority, &g.Status, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGoalAmount writes back the saved amount and (possibly promoted)
// status after an add-money operation.
func UpdateGoalAmount(ctx context.Context, pool *pgxpool.Pool, goalID int, currentAmount decimal.Decimal, status string) (*models.FinancialGoal, error) {
	query := `
		UPDATE financial_goals
		SET current_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, target_amount, current_amount, deadline, priority, status, description, created_at, updated_at
	`
	var g models.FinancialGoal
	err := pool.QueryRow(ctx, query, currentAmount, status, goalID).
		Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Priority, &g.Status, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func DeleteGoal(ctx context.Context, pool *pgxpool.Pool, goalID int) error {
	query := `DELETE FROM financial_goals WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, goalID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("financial goal not found")
	}
	return nil
}
