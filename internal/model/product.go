package model

import "time"

// Product is a second-hand listing. Once a product is purchased it is
// removed from the catalog entirely — there is no "sold" state. The
// Purchase record keeps its own price snapshot, so mutating or deleting
// a Product never rewrites purchase history.
//
// Price is in currency units, always non-negative and rounded to two
// decimal places at the service boundary before it reaches the store.
type Product struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
