package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/testutil"
)

func TestCookedMealRepository_CreateAndFindRecent(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewCookedMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	base := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	for i, title := range []string{"Shakshuka", "Dal", "Stir Fry"} {
		_, err := mealRepo.Create(ctx, models.CookedMeal{
			UserID:   user.ID,
			RecipeID: "recipe-" + title,
			Title:    title,
			Calories: floatPtr(400 + float64(i)*50),
			ProteinG: floatPtr(20),
			CookedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("creating meal %s: %v", title, err)
		}
	}

	recent, err := mealRepo.FindRecent(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("finding recent meals: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(recent))
	}
	if recent[0].Title != "Stir Fry" || recent[1].Title != "Dal" {
		t.Errorf("expected newest first, got %s, %s", recent[0].Title, recent[1].Title)
	}
}

func TestCookedMealRepository_CreateDefaultsCookedAt(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewCookedMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	created, err := mealRepo.Create(ctx, models.CookedMeal{
		UserID: user.ID, RecipeID: "r1", Title: "Toast",
	})
	if err != nil {
		t.Fatalf("creating meal: %v", err)
	}
	if created.CookedAt.IsZero() {
		t.Error("expected CookedAt to default to now")
	}
}

func TestCookedMealRepository_DailyTotals(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewCookedMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)

	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	meals := []models.CookedMeal{
		{UserID: user.ID, RecipeID: "r1", Title: "Porridge", Calories: floatPtr(300), ProteinG: floatPtr(10), CookedAt: day.Add(8 * time.Hour)},
		{UserID: user.ID, RecipeID: "r2", Title: "Curry", Calories: floatPtr(600), ProteinG: floatPtr(25), CookedAt: day.Add(19 * time.Hour)},
		{UserID: user.ID, RecipeID: "r3", Title: "Soup", Calories: floatPtr(250), CookedAt: day.Add(36 * time.Hour)},
	}
	for _, meal := range meals {
		if _, err := mealRepo.Create(ctx, meal); err != nil {
			t.Fatalf("creating meal %s: %v", meal.Title, err)
		}
	}

	totals, err := mealRepo.DailyTotals(ctx, user.ID, day.Add(-time.Hour))
	if err != nil {
		t.Fatalf("getting daily totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %d", len(totals))
	}

	// newest day first
	if totals[0].Date != "2026-03-13" || totals[0].Meals != 1 || totals[0].Calories != 250 {
		t.Errorf("unexpected first day: %+v", totals[0])
	}
	if totals[1].Date != "2026-03-12" || totals[1].Meals != 2 {
		t.Errorf("unexpected second day: %+v", totals[1])
	}
	if totals[1].Calories != 900 || totals[1].ProteinG != 35 {
		t.Errorf("unexpected second day sums: %+v", totals[1])
	}
}

func TestCookedMealRepository_DailyTotalsScopedToUser(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewCookedMealRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	other, err := userRepo.Create(ctx, models.User{OIDCSubject: "other", Email: "o@e.c", Name: "Other"})
	if err != nil {
		t.Fatalf("creating second user: %v", err)
	}

	if _, err := mealRepo.Create(ctx, models.CookedMeal{
		UserID: other.ID, RecipeID: "r1", Title: "Pasta", Calories: floatPtr(700),
	}); err != nil {
		t.Fatalf("creating meal: %v", err)
	}

	totals, err := mealRepo.DailyTotals(ctx, user.ID, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("getting daily totals: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("expected no totals for user without meals, got %+v", totals)
	}
}
