package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/google/uuid"
)

// DailyMacros is one day's nutrition totals over logged meals.
type DailyMacros struct {
	Date     string  `json:"date"`
	Meals    int     `json:"meals"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type CookedMealRepository interface {
	Create(ctx context.Context, meal models.CookedMeal) (models.CookedMeal, error)
	FindRecent(ctx context.Context, userID string, limit int) ([]models.CookedMeal, error)
	DailyTotals(ctx context.Context, userID string, since time.Time) ([]DailyMacros, error)
}

type SQLiteCookedMealRepository struct {
	database *sql.DB
}

func NewCookedMealRepository(database *sql.DB) *SQLiteCookedMealRepository {
	return &SQLiteCookedMealRepository{database: database}
}

const mealColumns = "id, user_id, recipe_id, title, calories, protein_g, carbs_g, fat_g, cooked_at"

func (repository *SQLiteCookedMealRepository) Create(ctx context.Context, meal models.CookedMeal) (models.CookedMeal, error) {
	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	if meal.CookedAt.IsZero() {
		meal.CookedAt = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO cooked_meals (`+mealColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meal.ID, meal.UserID, meal.RecipeID, meal.Title,
		meal.Calories, meal.ProteinG, meal.CarbsG, meal.FatG, meal.CookedAt,
	)
	if err != nil {
		return models.CookedMeal{}, fmt.Errorf("creating cooked meal: %w", err)
	}
	return meal, nil
}

func (repository *SQLiteCookedMealRepository) FindRecent(ctx context.Context, userID string, limit int) ([]models.CookedMeal, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT `+mealColumns+` FROM cooked_meals WHERE user_id = ? ORDER BY cooked_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding cooked meals: %w", err)
	}
	defer rows.Close()

	var meals []models.CookedMeal
	for rows.Next() {
		var meal models.CookedMeal
		if err := rows.Scan(&meal.ID, &meal.UserID, &meal.RecipeID, &meal.Title,
			&meal.Calories, &meal.ProteinG, &meal.CarbsG, &meal.FatG, &meal.CookedAt); err != nil {
			return nil, fmt.Errorf("scanning cooked meal: %w", err)
		}
		meals = append(meals, meal)
	}
	return meals, rows.Err()
}

// DailyTotals sums macros per calendar day. Meals with absent macro values
// contribute zero to that column but still count toward the meal total.
func (repository *SQLiteCookedMealRepository) DailyTotals(ctx context.Context, userID string, since time.Time) ([]DailyMacros, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT date(cooked_at) AS day, COUNT(*),
			COALESCE(SUM(calories), 0), COALESCE(SUM(protein_g), 0),
			COALESCE(SUM(carbs_g), 0), COALESCE(SUM(fat_g), 0)
		FROM cooked_meals
		WHERE user_id = ? AND cooked_at >= ?
		GROUP BY day ORDER BY day DESC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("summing daily macros: %w", err)
	}
	defer rows.Close()

	var totals []DailyMacros
	for rows.Next() {
		var day DailyMacros
		if err := rows.Scan(&day.Date, &day.Meals, &day.Calories, &day.ProteinG, &day.CarbsG, &day.FatG); err != nil {
			return nil, fmt.Errorf("scanning daily macros: %w", err)
		}
		totals = append(totals, day)
	}
	return totals, rows.Err()
}
