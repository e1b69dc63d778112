package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bensuskins/pantry-hub/internal/middleware"
	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/go-chi/chi/v5"
)

type ShoppingHandler struct {
	listRepo repository.ShoppingListRepository
}

func NewShoppingHandler(listRepo repository.ShoppingListRepository) *ShoppingHandler {
	return &ShoppingHandler{listRepo: listRepo}
}

func (handler *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	items, err := handler.listRepo.FindAll(ctx, user.ID)
	if err != nil {
		slog.Error("listing shopping items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load shopping list"})
		return
	}
	if items == nil {
		items = []models.ShoppingListItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type shoppingItemRequest struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

func (handler *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request shoppingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(request.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	created, err := handler.listRepo.Create(ctx, models.ShoppingListItem{
		UserID:   user.ID,
		Name:     name,
		Quantity: request.Quantity,
		Unit:     request.Unit,
	})
	if err != nil {
		slog.Error("creating shopping item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *ShoppingHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)
	id := chi.URLParam(r, "id")

	item, err := handler.listRepo.FindByID(ctx, user.ID, id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	if err := handler.listRepo.SetChecked(ctx, user.ID, id, !item.Checked); err != nil {
		slog.Error("toggling shopping item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}

	item, err = handler.listRepo.FindByID(ctx, user.ID, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reload item"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (handler *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.listRepo.Delete(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		slog.Error("deleting shopping item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *ShoppingHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.listRepo.DeleteChecked(ctx, user.ID); err != nil {
		slog.Error("clearing checked shopping items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear checked items"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMissingRequest struct {
	Names []string `json:"names"`
}

// AddMissing adds a recipe's missing ingredients to the shopping list in
// one call. Blank names are skipped rather than rejected so partial
// recipe data still works.
func (handler *ShoppingHandler) AddMissing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request addMissingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	added := make([]models.ShoppingListItem, 0, len(request.Names))
	for _, name := range request.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		created, err := handler.listRepo.Create(ctx, models.ShoppingListItem{UserID: user.ID, Name: name})
		if err != nil {
			slog.Error("adding missing ingredient", "name", name, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add ingredients"})
			return
		}
		added = append(added, created)
	}
	writeJSON(w, http.StatusCreated, added)
}
