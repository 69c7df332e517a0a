// Package lookup implements the barcode lookup workflow: a reusable state
// machine that accepts codes from manual entry or capture decode events,
// asks the product repository for a match, and owns the resulting state
package lookup

import "context"

// Nutrients holds per-100g values from the product database.
// A nil field means the source data does not know the value; it is never
// substituted with zero here. Rendering may still choose to print 0
type Nutrients struct {
	EnergyKcal    *float64 `json:"energy_kcal,omitempty"`
	Proteins      *float64 `json:"proteins,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
}

// ProductRecord is the read-only snapshot of a successful lookup.
// Constructed fresh on each lookup and replaced wholesale, never merged
type ProductRecord struct {
	Barcode         string    `json:"barcode"`
	Name            string    `json:"name"`
	Brands          string    `json:"brands,omitempty"`
	IngredientsText string    `json:"ingredients_text,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Nutrients       Nutrients `json:"nutrients"`
}

// Fetcher is the stateless boundary to the external product database.
// A nil record with a nil error is not a valid return; absence is
// signalled with a NotFound coded error, transport and parse failures
// with an Upstream coded error
type Fetcher interface {
	FetchProduct(ctx context.Context, code string) (*ProductRecord, error)
}
