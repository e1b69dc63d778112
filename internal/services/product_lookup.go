package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ProductLookup resolves barcodes against an OpenFoodFacts-compatible API.
// It only ever produces a best-effort name; any failure is reported as
// "nothing found" so a scan can always proceed.
type ProductLookup struct {
	baseURL string
	client  *http.Client
}

func NewProductLookup(baseURL string) *ProductLookup {
	return &ProductLookup{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type productResponse struct {
	Product struct {
		ProductName   string `json:"product_name"`
		ProductNameEN string `json:"product_name_en"`
		Brands        string `json:"brands"`
	} `json:"product"`
}

// Lookup satisfies ProductLookupFunc. Preference order mirrors the lookup
// the mobile client used: product name, then its English variant, then the
// brand string.
func (lookup *ProductLookup) Lookup(barcode string) (string, bool) {
	requestURL := fmt.Sprintf("%s/api/v2/product/%s.json", lookup.baseURL, url.PathEscape(barcode))

	resp, err := lookup.client.Get(requestURL)
	if err != nil {
		slog.Warn("product lookup failed", "barcode", barcode, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("product lookup miss", "barcode", barcode, "status", resp.StatusCode)
		return "", false
	}

	var parsed productResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Warn("decoding product lookup response", "barcode", barcode, "error", err)
		return "", false
	}

	for _, candidate := range []string{parsed.Product.ProductName, parsed.Product.ProductNameEN, parsed.Product.Brands} {
		if name := strings.TrimSpace(candidate); name != "" {
			return name, true
		}
	}
	return "", false
}
