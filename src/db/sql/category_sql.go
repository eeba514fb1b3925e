package db

import (
	"bookkeeping-server/src/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (name, type, parent_id, color, icon, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, type, parent_id, color, icon, description, is_active, created_at, updated_at
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, category.Name, category.Type, category.ParentID, category.Color, category.Icon, category.Description).
		Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.Color, &c.Icon, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, categoryID int) (*models.Category, error) {
	query := `
		SELECT id, name, type, parent_id, color, icon, description, is_active, created_at, updated_at
		FROM categories WHERE id = $1
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, categoryID).
		Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.Color, &c.Icon, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAllCategories lists active categories, optionally filtered by type
// (income/expense). Empty categoryType means no filter.
func GetAllCategories(ctx context.Context, pool *pgxpool.Pool, categoryType string) ([]models.Category, error) {
	query := `
		SELECT id, name, type, parent_id, color, icon, description, is_active, created_at, updated_at
		FROM categories
		WHERE is_active = TRUE AND ($1 = '' OR type = $1)
		ORDER BY id
	`
	rows, err := pool.Query(ctx, query, categoryType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.Color, &c.Icon, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, type = $2, parent_id = $3, color = $4, icon = $5, description = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id, name, type, parent_id, color, icon, description, is_active, created_at, updated_at
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, category.Name, category.Type, category.ParentID, category.Color, category.Icon, category.Description, category.IsActive, category.ID).
		Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.Color, &c.Icon, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, categoryID int) error {
	query := `UPDATE categories SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, categoryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

// GetDefaultCategoryID returns the fallback category for uncategorized
// transactions of the given type: 其他支出 for expenses, 其他收入 for income.
func GetDefaultCategoryID(ctx context.Context, pool *pgxpool.Pool, transactionType string) (int, error) {
	name := "其他支出"
	if transactionType == "income" {
		name = "其他收入"
	}
	var id int
	err := pool.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1 AND type = $2`, name, transactionType).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("default category %q not found: %w", name, err)
	}
	return id, nil
}
