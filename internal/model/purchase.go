package model

import "time"

// Purchase is an immutable record of one product changing hands.
// Price is the product's price at the moment of checkout — an audit
// snapshot, deliberately decoupled from the Product record.
type Purchase struct {
	ID          string    `json:"id"`
	BuyerID     string    `json:"buyerId"`
	SellerID    string    `json:"sellerId"`
	ProductID   string    `json:"productId"`
	Price       float64   `json:"price"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
