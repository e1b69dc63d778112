package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bensuskins/pantry-hub/internal/middleware"
	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/go-chi/chi/v5"
)

type TokenHandler struct {
	tokenRepo repository.APITokenRepository
}

func NewTokenHandler(tokenRepo repository.APITokenRepository) *TokenHandler {
	return &TokenHandler{tokenRepo: tokenRepo}
}

type createTokenRequest struct {
	Name          string `json:"name"`
	Scope         string `json:"scope"`
	ExpiresInDays *int   `json:"expires_in_days"`
}

// CreateToken mints a bearer token. The raw value appears once in this
// response; only the hash is stored.
func (handler *TokenHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request createTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if request.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if request.Scope != "" && request.Scope != "api" && request.Scope != "calendar" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scope must be api or calendar"})
		return
	}

	rawToken := generateToken()
	token := models.APIToken{
		Name:            request.Name,
		TokenHash:       repository.HashToken(rawToken),
		Scope:           request.Scope,
		CreatedByUserID: user.ID,
	}

	if request.ExpiresInDays != nil {
		expires := time.Now().AddDate(0, 0, *request.ExpiresInDays)
		token.ExpiresAt = &expires
	}

	created, err := handler.tokenRepo.Create(ctx, token)
	if err != nil {
		slog.Error("creating token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create token"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    created.ID,
		"name":  created.Name,
		"scope": created.Scope,
		"token": rawToken,
	})
}

func (handler *TokenHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	tokens, err := handler.tokenRepo.FindByUser(ctx, user.ID)
	if err != nil {
		slog.Error("listing tokens", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load tokens"})
		return
	}
	if tokens == nil {
		tokens = []models.APIToken{}
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (handler *TokenHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := handler.tokenRepo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		slog.Error("deleting token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete token"})
		return
	}
	w.WriteHeader(http.StatusOK)
}

func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
