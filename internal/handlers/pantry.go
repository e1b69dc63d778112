package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bensuskins/pantry-hub/internal/middleware"
	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/services"
	"github.com/go-chi/chi/v5"
)

type PantryHandler struct {
	pantryRepo  repository.PantryItemRepository
	lookup      services.ProductLookupFunc
	transcriber services.Transcriber
}

func NewPantryHandler(
	pantryRepo repository.PantryItemRepository,
	lookup services.ProductLookupFunc,
	transcriber services.Transcriber,
) *PantryHandler {
	return &PantryHandler{
		pantryRepo:  pantryRepo,
		lookup:      lookup,
		transcriber: transcriber,
	}
}

// pantryItemView decorates an item with its derived urgency. Urgency is
// never stored; it depends on the day the request is made.
type pantryItemView struct {
	models.PantryItem
	UrgencyTier  string `json:"urgency_tier"`
	UrgencyLabel string `json:"urgency_label"`
}

func viewOf(item models.PantryItem, today time.Time) pantryItemView {
	label, tier := services.UrgencyLabel(item.ExpiryDate, today)
	return pantryItemView{PantryItem: item, UrgencyTier: tier.String(), UrgencyLabel: label}
}

func (handler *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	filter := repository.PantryFilter{}
	if location := r.URL.Query().Get("location"); location != "" {
		loc := models.Location(location)
		if !loc.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown location"})
			return
		}
		filter.Location = &loc
	}

	items, err := handler.pantryRepo.FindAll(ctx, user.ID, filter)
	if err != nil {
		slog.Error("listing pantry items", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load pantry"})
		return
	}

	today := time.Now()
	views := make([]pantryItemView, 0, len(items))
	if within := r.URL.Query().Get("expiring_within"); within != "" {
		maxDays, err := strconv.Atoi(within)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expiring_within must be a number"})
			return
		}
		for _, item := range items {
			if days, ok := services.DaysUntil(item.ExpiryDate, today); ok && days <= maxDays {
				views = append(views, viewOf(item, today))
			}
		}
	} else {
		for _, item := range items {
			views = append(views, viewOf(item, today))
		}
	}

	writeJSON(w, http.StatusOK, views)
}

func (handler *PantryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	item, err := handler.pantryRepo.FindByID(ctx, user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(item, time.Now()))
}

type pantryItemRequest struct {
	DisplayName  string   `json:"display_name"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit"`
	Location     string   `json:"location"`
	PurchaseDate *string  `json:"purchase_date"`
	ExpiryDate   *string  `json:"expiry_date"`
	Barcode      *string  `json:"barcode"`
	PricePaid    *float64 `json:"price_paid"`
	Currency     *string  `json:"currency"`
}

func (request pantryItemRequest) validate() string {
	if strings.TrimSpace(request.DisplayName) == "" {
		return "display_name is required"
	}
	if request.Quantity <= 0 {
		return "quantity must be positive"
	}
	if !models.Unit(request.Unit).Valid() {
		return "unknown unit"
	}
	if !models.Location(request.Location).Valid() {
		return "unknown location"
	}
	for _, date := range []*string{request.PurchaseDate, request.ExpiryDate} {
		if date != nil {
			if _, err := time.Parse("2006-01-02", *date); err != nil {
				return "dates must be YYYY-MM-DD"
			}
		}
	}
	return ""
}

func (request pantryItemRequest) toModel(userID string) models.PantryItem {
	displayName := strings.TrimSpace(request.DisplayName)
	return models.PantryItem{
		UserID:        userID,
		CanonicalName: services.CanonicalName(displayName),
		DisplayName:   displayName,
		Quantity:      request.Quantity,
		Unit:          models.Unit(request.Unit),
		Location:      models.Location(request.Location),
		PurchaseDate:  request.PurchaseDate,
		ExpiryDate:    request.ExpiryDate,
		Barcode:       request.Barcode,
		PricePaid:     request.PricePaid,
		Currency:      request.Currency,
	}
}

func (handler *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request pantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if message := request.validate(); message != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
		return
	}

	created, err := handler.pantryRepo.Create(ctx, request.toModel(user.ID))
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "an item with this barcode already exists"})
			return
		}
		slog.Error("creating pantry item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(created, time.Now()))
}

func (handler *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	existing, err := handler.pantryRepo.FindByID(ctx, user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	var request pantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if message := request.validate(); message != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
		return
	}

	updated := request.toModel(user.ID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := handler.pantryRepo.Update(ctx, updated); err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "an item with this barcode already exists"})
			return
		}
		slog.Error("updating pantry item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}

	item, err := handler.pantryRepo.FindByID(ctx, user.ID, existing.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reload item"})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(item, time.Now()))
}

func (handler *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.pantryRepo.Delete(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		slog.Error("deleting pantry item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

// Scan resolves a barcode against the user's pantry. A hit bumps the
// existing item's quantity by one and returns it; a miss returns a draft
// for the client to confirm through Create.
func (handler *PantryHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request scanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(request.Barcode) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "barcode is required"})
		return
	}

	var existing *models.PantryItem
	found, err := handler.pantryRepo.FindByBarcode(ctx, user.ID, request.Barcode)
	switch {
	case err == nil:
		existing = &found
	case errors.Is(err, sql.ErrNoRows):
		// unknown barcode, reconcile to a draft
	default:
		slog.Error("looking up barcode", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to look up barcode"})
		return
	}

	decision := services.ReconcileScan(request.Barcode, existing, handler.lookup)
	switch outcome := decision.(type) {
	case services.MergeIncrement:
		if err := handler.pantryRepo.UpdateQuantity(ctx, user.ID, outcome.ItemID, outcome.NewQuantity); err != nil {
			slog.Error("merging scanned item", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update quantity"})
			return
		}
		item, err := handler.pantryRepo.FindByID(ctx, user.ID, outcome.ItemID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reload item"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"action": "merged",
			"item":   viewOf(item, time.Now()),
		})
	case services.CreateDraft:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"action": "draft",
			"draft": map[string]interface{}{
				"barcode":      outcome.Barcode,
				"display_name": outcome.PrefillName,
				"quantity":     outcome.PrefillQuantity,
				"unit":         outcome.PrefillUnit,
			},
		})
	}
}

type voiceRequest struct {
	Text string `json:"text"`
}

// Voice turns a spoken phrase into draft entries. Clients either send the
// transcript directly or upload audio to be transcribed first.
func (handler *PantryHandler) Voice(w http.ResponseWriter, r *http.Request) {
	transcript := ""

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "audio file is required"})
			return
		}
		defer file.Close()

		transcript, err = handler.transcriber.Transcribe(r.Context(), file, header.Filename)
		if err != nil {
			slog.Error("transcribing audio", "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "transcription failed"})
			return
		}
	} else {
		var request voiceRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		transcript = request.Text
	}

	entries := services.ParseUtterance(transcript)
	if entries == nil {
		entries = []services.ParsedEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transcript": transcript,
		"entries":    entries,
	})
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
