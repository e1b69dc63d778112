package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/testutil"
)

func TestExpiryCalendarHandler_RejectsMissingOrWrongToken(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAPITokenRepository(db)
	pantryRepo := repository.NewPantryItemRepository(db)
	handler := NewExpiryCalendarHandler(pantryRepo, tokenRepo)

	user := newTestUser(t, userRepo)

	// valid token, but wrong scope
	if _, err := tokenRepo.Create(context.Background(), models.APIToken{
		Name: "Phone", TokenHash: repository.HashToken("api-token"), CreatedByUserID: user.ID,
	}); err != nil {
		t.Fatalf("creating token: %v", err)
	}

	for _, target := range []string{
		"/calendar/expiries.ics",
		"/calendar/expiries.ics?token=unknown",
		"/calendar/expiries.ics?token=api-token",
	} {
		recorder := httptest.NewRecorder()
		handler.Feed(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", target, recorder.Code)
		}
	}
}

func TestExpiryCalendarHandler_FeedListsDatedItems(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAPITokenRepository(db)
	pantryRepo := repository.NewPantryItemRepository(db)
	handler := NewExpiryCalendarHandler(pantryRepo, tokenRepo)

	user := newTestUser(t, userRepo)

	if _, err := tokenRepo.Create(context.Background(), models.APIToken{
		Name: "Calendar", TokenHash: repository.HashToken("cal-token"),
		Scope: "calendar", CreatedByUserID: user.ID,
	}); err != nil {
		t.Fatalf("creating token: %v", err)
	}

	expiry := "2026-09-04"
	seeds := []models.PantryItem{
		{UserID: user.ID, CanonicalName: "oat milk", DisplayName: "Oat Milk", Quantity: 1,
			Unit: models.UnitLitre, Location: models.LocationFridge, ExpiryDate: &expiry},
		{UserID: user.ID, CanonicalName: "rice", DisplayName: "Rice", Quantity: 1,
			Unit: models.UnitKilogram, Location: models.LocationPantry},
	}
	for _, seed := range seeds {
		if _, err := pantryRepo.Create(context.Background(), seed); err != nil {
			t.Fatalf("creating %s: %v", seed.DisplayName, err)
		}
	}

	recorder := httptest.NewRecorder()
	handler.Feed(recorder, httptest.NewRequest(http.MethodGet, "/calendar/expiries.ics?token=cal-token", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if contentType := recorder.Header().Get("Content-Type"); !strings.HasPrefix(contentType, "text/calendar") {
		t.Errorf("unexpected content type %s", contentType)
	}

	body := recorder.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("expected a VCALENDAR document")
	}
	if !strings.Contains(body, "Oat Milk expires") {
		t.Error("expected an event for the dated item")
	}
	if strings.Contains(body, "Rice") {
		t.Error("undated items must not appear in the feed")
	}
	if !strings.Contains(body, "20260904") {
		t.Error("expected an all-day date matching the expiry")
	}
}
