package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bensuskins/pantry-hub/internal/middleware"
	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
)

type MacrosHandler struct {
	mealRepo repository.CookedMealRepository
}

func NewMacrosHandler(mealRepo repository.CookedMealRepository) *MacrosHandler {
	return &MacrosHandler{mealRepo: mealRepo}
}

func (handler *MacrosHandler) Daily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a positive number"})
			return
		}
		days = parsed
	}

	since := time.Now().AddDate(0, 0, -days)
	totals, err := handler.mealRepo.DailyTotals(ctx, user.ID, since)
	if err != nil {
		slog.Error("summing daily macros", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load macros"})
		return
	}
	if totals == nil {
		totals = []repository.DailyMacros{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"days": totals})
}

func (handler *MacrosHandler) RecentMeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive number"})
			return
		}
		limit = parsed
	}

	meals, err := handler.mealRepo.FindRecent(ctx, user.ID, limit)
	if err != nil {
		slog.Error("listing recent meals", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load meals"})
		return
	}
	if meals == nil {
		meals = []models.CookedMeal{}
	}
	writeJSON(w, http.StatusOK, meals)
}
