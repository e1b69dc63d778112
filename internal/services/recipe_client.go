package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bensuskins/pantry-hub/internal/models"
)

// RecipeMatcher is the remote recipe-matching and nutrition service.
type RecipeMatcher interface {
	Match(ctx context.Context, items []MatchItem, maxMissing int) ([]models.RecipeCandidate, error)
	Nutrition(ctx context.Context, recipeID string) (models.Nutrition, error)
}

// MatchItem is one inventory line in a match request.
type MatchItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	ExpiryDate *string `json:"expiry_date"`
	Location   string  `json:"location"`
}

// RecipeClient talks to the matching backend over HTTP. Ranking and
// nutrition math live entirely on the remote side; this client just carries
// the payloads.
type RecipeClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRecipeClient(baseURL string, apiKey string) *RecipeClient {
	return &RecipeClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type matchRequest struct {
	Items      []MatchItem `json:"items"`
	MaxMissing int         `json:"max_missing"`
}

type matchResponse struct {
	Recipes []models.RecipeCandidate `json:"recipes"`
}

func (client *RecipeClient) Match(ctx context.Context, items []MatchItem, maxMissing int) ([]models.RecipeCandidate, error) {
	body, err := json.Marshal(matchRequest{Items: items, MaxMissing: maxMissing})
	if err != nil {
		return nil, fmt.Errorf("marshalling match request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/match", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building match request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	client.authorize(request)

	resp, err := client.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("calling match: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("match returned status %d", resp.StatusCode)
	}

	var parsed matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding match response: %w", err)
	}
	return parsed.Recipes, nil
}

func (client *RecipeClient) Nutrition(ctx context.Context, recipeID string) (models.Nutrition, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/nutrition/"+recipeID, nil)
	if err != nil {
		return models.Nutrition{}, fmt.Errorf("building nutrition request: %w", err)
	}
	client.authorize(request)

	resp, err := client.client.Do(request)
	if err != nil {
		return models.Nutrition{}, fmt.Errorf("calling nutrition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Nutrition{}, fmt.Errorf("nutrition returned status %d", resp.StatusCode)
	}

	var nutrition models.Nutrition
	if err := json.NewDecoder(resp.Body).Decode(&nutrition); err != nil {
		return models.Nutrition{}, fmt.Errorf("decoding nutrition response: %w", err)
	}
	return nutrition, nil
}

func (client *RecipeClient) authorize(request *http.Request) {
	if client.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+client.apiKey)
	}
}
