package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/google/uuid"
)

type PantryFilter struct {
	Location *models.Location
}

type PantryItemRepository interface {
	FindByID(ctx context.Context, userID string, id string) (models.PantryItem, error)
	FindAll(ctx context.Context, userID string, filter PantryFilter) ([]models.PantryItem, error)
	FindByBarcode(ctx context.Context, userID string, barcode string) (models.PantryItem, error)
	FindDated(ctx context.Context) ([]models.PantryItem, error)
	Create(ctx context.Context, item models.PantryItem) (models.PantryItem, error)
	Update(ctx context.Context, item models.PantryItem) error
	UpdateQuantity(ctx context.Context, userID string, id string, quantity float64) error
	Delete(ctx context.Context, userID string, id string) error
}

type SQLitePantryItemRepository struct {
	database *sql.DB
}

func NewPantryItemRepository(database *sql.DB) *SQLitePantryItemRepository {
	return &SQLitePantryItemRepository{database: database}
}

const pantryColumns = `id, user_id, canonical_name, display_name, quantity, unit, location,
	purchase_date, expiry_date, barcode, price_paid, currency, created_at, updated_at`

func scanPantryItem(scanner interface{ Scan(...any) error }) (models.PantryItem, error) {
	var item models.PantryItem
	err := scanner.Scan(
		&item.ID, &item.UserID, &item.CanonicalName, &item.DisplayName,
		&item.Quantity, &item.Unit, &item.Location,
		&item.PurchaseDate, &item.ExpiryDate, &item.Barcode,
		&item.PricePaid, &item.Currency, &item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}

func (repository *SQLitePantryItemRepository) FindByID(ctx context.Context, userID string, id string) (models.PantryItem, error) {
	row := repository.database.QueryRowContext(ctx,
		`SELECT `+pantryColumns+` FROM pantry_items WHERE user_id = ? AND id = ?`, userID, id,
	)
	item, err := scanPantryItem(row)
	if err != nil {
		return models.PantryItem{}, fmt.Errorf("finding pantry item by id: %w", err)
	}
	return item, nil
}

func (repository *SQLitePantryItemRepository) FindAll(ctx context.Context, userID string, filter PantryFilter) ([]models.PantryItem, error) {
	query := `SELECT ` + pantryColumns + ` FROM pantry_items WHERE user_id = ?`
	args := []any{userID}
	if filter.Location != nil {
		query += " AND location = ?"
		args = append(args, *filter.Location)
	}
	query += " ORDER BY display_name COLLATE NOCASE ASC"

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding pantry items: %w", err)
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLitePantryItemRepository) FindByBarcode(ctx context.Context, userID string, barcode string) (models.PantryItem, error) {
	row := repository.database.QueryRowContext(ctx,
		`SELECT `+pantryColumns+` FROM pantry_items WHERE user_id = ? AND barcode = ?`, userID, barcode,
	)
	item, err := scanPantryItem(row)
	if err != nil {
		return models.PantryItem{}, fmt.Errorf("finding pantry item by barcode: %w", err)
	}
	return item, nil
}

// FindDated returns every item with an expiry date, across all users. Used
// by the expiry sweep and nothing else.
func (repository *SQLitePantryItemRepository) FindDated(ctx context.Context) ([]models.PantryItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT `+pantryColumns+` FROM pantry_items WHERE expiry_date IS NOT NULL ORDER BY expiry_date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("finding dated pantry items: %w", err)
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLitePantryItemRepository) Create(ctx context.Context, item models.PantryItem) (models.PantryItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO pantry_items (`+pantryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.CanonicalName, item.DisplayName,
		item.Quantity, item.Unit, item.Location,
		item.PurchaseDate, item.ExpiryDate, item.Barcode,
		item.PricePaid, item.Currency, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return models.PantryItem{}, fmt.Errorf("creating pantry item: %w", err)
	}
	return item, nil
}

func (repository *SQLitePantryItemRepository) Update(ctx context.Context, item models.PantryItem) error {
	item.UpdatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`UPDATE pantry_items SET canonical_name = ?, display_name = ?, quantity = ?, unit = ?,
			location = ?, purchase_date = ?, expiry_date = ?, barcode = ?, price_paid = ?,
			currency = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		item.CanonicalName, item.DisplayName, item.Quantity, item.Unit,
		item.Location, item.PurchaseDate, item.ExpiryDate, item.Barcode, item.PricePaid,
		item.Currency, item.UpdatedAt, item.UserID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating pantry item: %w", err)
	}
	return nil
}

func (repository *SQLitePantryItemRepository) UpdateQuantity(ctx context.Context, userID string, id string, quantity float64) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE pantry_items SET quantity = ?, updated_at = ? WHERE user_id = ? AND id = ?",
		quantity, time.Now(), userID, id,
	)
	if err != nil {
		return fmt.Errorf("updating pantry item quantity: %w", err)
	}
	return nil
}

func (repository *SQLitePantryItemRepository) Delete(ctx context.Context, userID string, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM pantry_items WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return fmt.Errorf("deleting pantry item: %w", err)
	}
	return nil
}
