package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type Unit string

const (
	UnitPieces     Unit = "pcs"
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMillilitre Unit = "ml"
	UnitLitre      Unit = "l"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPieces, UnitGram, UnitKilogram, UnitMillilitre, UnitLitre, UnitTablespoon, UnitTeaspoon:
		return true
	}
	return false
}

type Location string

const (
	LocationPantry  Location = "pantry"
	LocationFridge  Location = "fridge"
	LocationFreezer Location = "freezer"
)

func (l Location) Valid() bool {
	switch l {
	case LocationPantry, LocationFridge, LocationFreezer:
		return true
	}
	return false
}

// UrgencyTier orders items by how close they are to expiring. Derived from
// the expiry date on every read, never stored.
type UrgencyTier int

const (
	UrgencyNone UrgencyTier = iota
	UrgencyLater
	UrgencySoon
	UrgencyCritical
)

func (t UrgencyTier) String() string {
	switch t {
	case UrgencyLater:
		return "later"
	case UrgencySoon:
		return "soon"
	case UrgencyCritical:
		return "critical"
	}
	return "none"
}

type User struct {
	ID          string    `json:"id"`
	OIDCSubject string    `json:"-"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type APIToken struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	TokenHash       string     `json:"-"`
	Scope           string     `json:"scope"`
	CreatedByUserID string     `json:"created_by_user_id"`
	ExpiresAt       *time.Time `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PantryItem is a single inventory row. CanonicalName is always recomputed
// from DisplayName on write; renaming an item updates its lookup key.
type PantryItem struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	CanonicalName string `json:"canonical_name"`
	DisplayName   string `json:"display_name"`

	Quantity float64  `json:"quantity"`
	Unit     Unit     `json:"unit"`
	Location Location `json:"location"`

	// Calendar dates without a time component, "YYYY-MM-DD".
	PurchaseDate *string `json:"purchase_date"`
	ExpiryDate   *string `json:"expiry_date"`

	Barcode   *string  `json:"barcode"`
	PricePaid *float64 `json:"price_paid"`
	Currency  *string  `json:"currency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShoppingListItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Quantity  *float64  `json:"quantity"`
	Unit      *string   `json:"unit"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CookedMeal struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	RecipeID string   `json:"recipe_id"`
	Title    string   `json:"title"`
	Calories *float64 `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`

	CookedAt time.Time `json:"cooked_at"`
}

// RecipeCandidate comes from the remote matching service. The server never
// mutates or re-ranks candidates; it only filters them.
type RecipeCandidate struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Image              *string  `json:"image"`
	UsedIngredients    []string `json:"used_ingredients"`
	MissingIngredients []string `json:"missing_ingredients"`
	MatchScore         float64  `json:"match_score"`
	ReadyInMinutes     *int     `json:"ready_in_minutes"`
	Source             string   `json:"source"`
}

type Nutrition struct {
	RecipeID string   `json:"recipe_id"`
	Calories *float64 `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
}
