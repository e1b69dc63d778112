package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bensuskins/pantry-hub/internal/middleware"
	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/services"
	"github.com/go-chi/chi/v5"
)

type RecipeHandler struct {
	pantryRepo repository.PantryItemRepository
	mealRepo   repository.CookedMealRepository
	matcher    services.RecipeMatcher
}

func NewRecipeHandler(
	pantryRepo repository.PantryItemRepository,
	mealRepo repository.CookedMealRepository,
	matcher services.RecipeMatcher,
) *RecipeHandler {
	return &RecipeHandler{
		pantryRepo: pantryRepo,
		mealRepo:   mealRepo,
		matcher:    matcher,
	}
}

// Suggestions sends the pantry snapshot to the matching service. With
// use_up_soon=true the candidate list is narrowed to recipes using at
// least one ingredient close to expiry; ranking is left untouched.
func (handler *RecipeHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	maxMissing := 2
	if raw := r.URL.Query().Get("max_missing"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "max_missing must be a non-negative number"})
			return
		}
		maxMissing = parsed
	}

	inventory, err := handler.pantryRepo.FindAll(ctx, user.ID, repository.PantryFilter{})
	if err != nil {
		slog.Error("loading pantry for suggestions", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load pantry"})
		return
	}

	items := make([]services.MatchItem, 0, len(inventory))
	for _, item := range inventory {
		items = append(items, services.MatchItem{
			Name:       item.DisplayName,
			Quantity:   item.Quantity,
			Unit:       string(item.Unit),
			ExpiryDate: item.ExpiryDate,
			Location:   string(item.Location),
		})
	}

	recipes, err := handler.matcher.Match(ctx, items, maxMissing)
	if err != nil {
		slog.Error("matching recipes", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "recipe service unavailable"})
		return
	}

	if r.URL.Query().Get("use_up_soon") == "true" {
		recipes = services.FilterUseUpSoon(recipes, inventory, time.Now(), services.UseUpSoonThresholdDays)
	}
	if recipes == nil {
		recipes = []models.RecipeCandidate{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"recipes": recipes})
}

type cookRequest struct {
	Title string `json:"title"`
}

// Cook logs a cooked meal. A failed nutrition lookup still records the
// meal, just without macros.
func (handler *RecipeHandler) Cook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)
	recipeID := chi.URLParam(r, "id")

	var request cookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if request.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	meal := models.CookedMeal{
		UserID:   user.ID,
		RecipeID: recipeID,
		Title:    request.Title,
	}

	if nutrition, err := handler.matcher.Nutrition(ctx, recipeID); err != nil {
		slog.Warn("nutrition lookup failed, logging meal without macros", "recipe_id", recipeID, "error", err)
	} else {
		meal.Calories = nutrition.Calories
		meal.ProteinG = nutrition.ProteinG
		meal.CarbsG = nutrition.CarbsG
		meal.FatG = nutrition.FatG
	}

	created, err := handler.mealRepo.Create(ctx, meal)
	if err != nil {
		slog.Error("logging cooked meal", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log meal"})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
