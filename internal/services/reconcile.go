package services

import (
	"strings"

	"github.com/bensuskins/pantry-hub/internal/models"
)

// ProductLookupFunc resolves a barcode to a product display name. The ok
// result is false when no name could be found; lookup failures are treated
// the same way and never abort a scan.
type ProductLookupFunc func(barcode string) (string, bool)

// ReconcileDecision is the outcome of a barcode scan: either merge into an
// existing pantry row or stage a new one. The decision carries everything
// the caller needs to execute it; ReconcileScan itself performs no writes.
type ReconcileDecision interface {
	reconcileDecision()
}

// MergeIncrement bumps an existing item's quantity by one unit, in whatever
// unit the item already uses. No unit conversion is attempted, so rescanning
// a multi-pack barcode still adds exactly one.
type MergeIncrement struct {
	ItemID      string
	NewQuantity float64
}

// CreateDraft pre-fills a new pantry item for an unknown barcode.
// PrefillName is empty when the product lookup had no answer.
type CreateDraft struct {
	Barcode         string
	PrefillName     string
	PrefillQuantity float64
	PrefillUnit     models.Unit
}

func (MergeIncrement) reconcileDecision() {}
func (CreateDraft) reconcileDecision()    {}

// ReconcileScan decides what a scanned barcode means against the current
// inventory. Matching is exact equality on the barcode, scoped to one user's
// items by the caller; barcodes are opaque text and no checksum validation
// is performed. Given the same barcode and an unmodified snapshot, the
// decision is the same every time.
func ReconcileScan(barcode string, existing *models.PantryItem, lookup ProductLookupFunc) ReconcileDecision {
	if existing != nil {
		return MergeIncrement{
			ItemID:      existing.ID,
			NewQuantity: existing.Quantity + 1,
		}
	}

	prefillName := ""
	if lookup != nil {
		if name, ok := safeLookup(lookup, barcode); ok {
			prefillName = strings.TrimSpace(name)
		}
	}

	return CreateDraft{
		Barcode:         barcode,
		PrefillName:     prefillName,
		PrefillQuantity: 1,
		PrefillUnit:     models.UnitPieces,
	}
}

// safeLookup keeps a misbehaving lookup from taking the scan down with it.
// A panic counts as "nothing found".
func safeLookup(lookup ProductLookupFunc, barcode string) (name string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			name, ok = "", false
		}
	}()
	return lookup(barcode)
}
