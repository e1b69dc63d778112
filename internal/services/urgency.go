package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/bensuskins/pantry-hub/internal/models"
)

const dateLayout = "2006-01-02"

// UseUpSoonThresholdDays is the default window for the use-up-soon recipe
// filter.
const UseUpSoonThresholdDays = 5

// noExpiryDays stands in for items without an expiry date when comparing
// against a threshold, so they never count as expiring.
const noExpiryDays = 9999

// DaysUntil returns the signed whole-day difference between an expiry date
// and today, ignoring time of day. ok is false when the date is absent or
// unparseable.
func DaysUntil(expiryDate *string, today time.Time) (int, bool) {
	if expiryDate == nil || *expiryDate == "" {
		return 0, false
	}
	expiry, err := time.Parse(dateLayout, *expiryDate)
	if err != nil {
		return 0, false
	}
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(base).Hours() / 24), true
}

// ClassifyUrgency maps a day count onto a tier. Thresholds are fixed:
// expired or due today is critical, 1-2 days is critical, 3-5 soon,
// 6-10 later, anything further (or undated) is none.
func ClassifyUrgency(days int, ok bool) models.UrgencyTier {
	switch {
	case !ok:
		return models.UrgencyNone
	case days <= 2:
		return models.UrgencyCritical
	case days <= 5:
		return models.UrgencySoon
	case days <= 10:
		return models.UrgencyLater
	}
	return models.UrgencyNone
}

// UrgencyLabel produces the badge text shown next to an item, along with its
// tier. Undated and far-off items get an empty label.
func UrgencyLabel(expiryDate *string, today time.Time) (string, models.UrgencyTier) {
	days, ok := DaysUntil(expiryDate, today)
	tier := ClassifyUrgency(days, ok)
	if !ok {
		return "", models.UrgencyNone
	}
	switch {
	case days <= 0:
		return "EXPIRED", tier
	case days <= 2:
		return fmt.Sprintf("EXPIRING (%dd)", days), tier
	case days <= 5:
		return fmt.Sprintf("Soon (%dd)", days), tier
	case days <= 10:
		return fmt.Sprintf("Later (%dd)", days), tier
	}
	return "", tier
}

// FilterUseUpSoon keeps the recipes that use at least one inventory item
// expiring within thresholdDays. Ingredients are matched case-insensitively
// against display names, candidate order is preserved, and candidates are
// returned as-is.
func FilterUseUpSoon(
	recipes []models.RecipeCandidate,
	inventory []models.PantryItem,
	today time.Time,
	thresholdDays int,
) []models.RecipeCandidate {
	expiring := make(map[string]struct{})
	for _, item := range inventory {
		days, ok := DaysUntil(item.ExpiryDate, today)
		if !ok {
			days = noExpiryDays
		}
		if days <= thresholdDays {
			expiring[strings.ToLower(strings.TrimSpace(item.DisplayName))] = struct{}{}
		}
	}

	var filtered []models.RecipeCandidate
	for _, recipe := range recipes {
		for _, used := range recipe.UsedIngredients {
			if _, ok := expiring[strings.ToLower(strings.TrimSpace(used))]; ok {
				filtered = append(filtered, recipe)
				break
			}
		}
	}
	return filtered
}
