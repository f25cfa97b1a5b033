package model

import "time"

// CartItem is one entry in a user's cart. Presence is binary — there is no
// quantity field, and adding the same product twice is a no-op.
//
// The ProductID is a soft reference: the product may be deleted by its
// owner or bought by another user between add-to-cart and checkout.
// Checkout skips entries it cannot resolve rather than failing.
type CartItem struct {
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}
