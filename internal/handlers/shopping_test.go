package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/testutil"
)

func TestShoppingHandler_CreateRequiresName(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	handler := NewShoppingHandler(repository.NewShoppingListRepository(db))

	user := newTestUser(t, userRepo)

	recorder := httptest.NewRecorder()
	handler.Create(recorder, requestAs(t, user, http.MethodPost, "/api/shopping-list", `{"name":"   "}`))
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", recorder.Code)
	}
}

func TestShoppingHandler_Toggle(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewShoppingListRepository(db)
	handler := NewShoppingHandler(listRepo)

	user := newTestUser(t, userRepo)

	item, err := listRepo.Create(context.Background(), models.ShoppingListItem{UserID: user.ID, Name: "Milk"})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}

	request := requestAs(t, user, http.MethodPost, "/api/shopping-list/"+item.ID+"/toggle", "")
	recorder := httptest.NewRecorder()
	handler.Toggle(recorder, withURLParam(request, "id", item.ID))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var toggled models.ShoppingListItem
	if err := json.NewDecoder(recorder.Body).Decode(&toggled); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !toggled.Checked {
		t.Error("expected item to be checked after toggle")
	}
}

func TestShoppingHandler_AddMissingSkipsBlanks(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewShoppingListRepository(db)
	handler := NewShoppingHandler(listRepo)

	user := newTestUser(t, userRepo)

	recorder := httptest.NewRecorder()
	handler.AddMissing(recorder, requestAs(t, user, http.MethodPost, "/api/shopping-list/missing",
		`{"names":["feta","", "  ", "olives"]}`))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}

	var added []models.ShoppingListItem
	if err := json.NewDecoder(recorder.Body).Decode(&added); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 items added, got %d", len(added))
	}
	if added[0].Name != "feta" || added[1].Name != "olives" {
		t.Errorf("unexpected items: %+v", added)
	}
}
