package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/google/uuid"
)

type ShoppingListRepository interface {
	FindByID(ctx context.Context, userID string, id string) (models.ShoppingListItem, error)
	FindAll(ctx context.Context, userID string) ([]models.ShoppingListItem, error)
	Create(ctx context.Context, item models.ShoppingListItem) (models.ShoppingListItem, error)
	SetChecked(ctx context.Context, userID string, id string, checked bool) error
	Delete(ctx context.Context, userID string, id string) error
	DeleteChecked(ctx context.Context, userID string) error
}

type SQLiteShoppingListRepository struct {
	database *sql.DB
}

func NewShoppingListRepository(database *sql.DB) *SQLiteShoppingListRepository {
	return &SQLiteShoppingListRepository{database: database}
}

const shoppingColumns = "id, user_id, name, quantity, unit, checked, created_at, updated_at"

func (repository *SQLiteShoppingListRepository) FindByID(ctx context.Context, userID string, id string) (models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := repository.database.QueryRowContext(ctx,
		`SELECT `+shoppingColumns+` FROM shopping_list_items WHERE user_id = ? AND id = ?`, userID, id,
	).Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit, &item.Checked, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return models.ShoppingListItem{}, fmt.Errorf("finding shopping list item: %w", err)
	}
	return item, nil
}

func (repository *SQLiteShoppingListRepository) FindAll(ctx context.Context, userID string) ([]models.ShoppingListItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT `+shoppingColumns+` FROM shopping_list_items
		WHERE user_id = ? ORDER BY checked ASC, created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding shopping list items: %w", err)
	}
	defer rows.Close()

	var items []models.ShoppingListItem
	for rows.Next() {
		var item models.ShoppingListItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit, &item.Checked, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning shopping list item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLiteShoppingListRepository) Create(ctx context.Context, item models.ShoppingListItem) (models.ShoppingListItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO shopping_list_items (`+shoppingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Name, item.Quantity, item.Unit, item.Checked, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return models.ShoppingListItem{}, fmt.Errorf("creating shopping list item: %w", err)
	}
	return item, nil
}

func (repository *SQLiteShoppingListRepository) SetChecked(ctx context.Context, userID string, id string, checked bool) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE shopping_list_items SET checked = ?, updated_at = ? WHERE user_id = ? AND id = ?",
		checked, time.Now(), userID, id,
	)
	if err != nil {
		return fmt.Errorf("updating shopping list item: %w", err)
	}
	return nil
}

func (repository *SQLiteShoppingListRepository) Delete(ctx context.Context, userID string, id string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM shopping_list_items WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return fmt.Errorf("deleting shopping list item: %w", err)
	}
	return nil
}

func (repository *SQLiteShoppingListRepository) DeleteChecked(ctx context.Context, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM shopping_list_items WHERE user_id = ? AND checked = 1", userID)
	if err != nil {
		return fmt.Errorf("clearing checked shopping list items: %w", err)
	}
	return nil
}
