package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/bensuskins/pantry-hub/internal/repository"
)

type ExpiryCalendarHandler struct {
	pantryRepo repository.PantryItemRepository
	tokenRepo  repository.APITokenRepository
}

func NewExpiryCalendarHandler(
	pantryRepo repository.PantryItemRepository,
	tokenRepo repository.APITokenRepository,
) *ExpiryCalendarHandler {
	return &ExpiryCalendarHandler{
		pantryRepo: pantryRepo,
		tokenRepo:  tokenRepo,
	}
}

// Feed serves the token owner's dated pantry items as an iCalendar of
// all-day events, one per expiry date, for subscription from a calendar
// app. Calendar apps cannot set headers, so the token rides the query
// string.
func (handler *ExpiryCalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := handler.tokenRepo.FindByTokenHash(r.Context(), repository.HashToken(rawToken))
	if err != nil || token.Scope != "calendar" ||
		(token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now())) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	items, err := handler.pantryRepo.FindAll(ctx, token.CreatedByUserID, repository.PantryFilter{})
	if err != nil {
		slog.Error("loading pantry for calendar feed", "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//Pantry Hub//Pantry Hub//EN")
	calendar.SetXWRCalName("Pantry Expiries")

	now := time.Now()
	for _, item := range items {
		if item.ExpiryDate == nil {
			continue
		}
		expiry, err := time.Parse("2006-01-02", *item.ExpiryDate)
		if err != nil {
			slog.Warn("skipping item with bad expiry date", "item_id", item.ID, "date", *item.ExpiryDate)
			continue
		}

		event := calendar.AddEvent(fmt.Sprintf("expiry-%s@pantry-hub", item.ID))
		event.SetSummary(fmt.Sprintf("%s expires", item.DisplayName))
		event.SetDescription(fmt.Sprintf("%.2g %s in %s", item.Quantity, item.Unit, item.Location))
		event.SetAllDayStartAt(expiry)
		event.SetAllDayEndAt(expiry.AddDate(0, 0, 1))
		event.SetDtStampTime(now)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=pantry-expiries.ics")
	w.Write([]byte(calendar.Serialize()))
}
