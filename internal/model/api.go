package model

// Request and response shapes for the JSON API. Handlers decode into these
// and pass the fields on to the service layer — services never see HTTP.

// AuthRegisterRequest is the body of POST /api/auth/register.
type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// AuthLoginRequest is the body of POST /api/auth/login.
type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse bundles the issued session token with the user record.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest is the body of PUT /api/auth/me.
// Username is the only mutable profile field.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
}

// CreateProductRequest is the body of POST /api/products.
//
// Price is a pointer so the handler can tell "price": 0 apart from a
// missing field — both decode to 0 with a plain float64.
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
}

// UpdateProductRequest is the body of PUT /api/products/{id}.
// Every field is optional; only provided fields are merged.
type UpdateProductRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *Category `json:"category"`
	Price       *float64  `json:"price"`
	ImageURL    *string   `json:"imageUrl"`
}

// AddToCartRequest is the body of POST /api/cart.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

// CheckoutResponse is returned by POST /api/checkout. Purchases lists
// exactly the records created, so a caller can reconcile which cart
// entries were skipped as unresolvable.
type CheckoutResponse struct {
	OK        bool       `json:"ok"`
	Purchases []Purchase `json:"purchases"`
}

// DeleteProductResponse is returned by DELETE /api/products/{id}.
type DeleteProductResponse struct {
	OK      bool     `json:"ok"`
	Removed *Product `json:"removed"`
}

// LeaderboardEntry is one row of a leaderboard.
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// LeaderboardResponse is returned by GET /api/leaderboard.
type LeaderboardResponse struct {
	TopSellers []LeaderboardEntry `json:"topSellers"`
	TopBuyers  []LeaderboardEntry `json:"topBuyers"`
}

// PriceSuggestRequest is the body of POST /api/ai/price-suggest.
// Quality is a 0..1 factor describing the item's condition.
type PriceSuggestRequest struct {
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	ListedPrice *float64 `json:"listedPrice"`
	Quality     float64  `json:"quality"`
}

// SustainabilitySavings estimates what buying second-hand saves compared
// to a new purchase plus a shopping trip.
type SustainabilitySavings struct {
	CarbonKg  float64 `json:"carbonKg"`
	TimeHours float64 `json:"timeHours"`
	WasteKg   float64 `json:"wasteKg"`
}

// PriceSuggestResponse is the advisor's fair-price estimate.
type PriceSuggestResponse struct {
	FairPrice       float64               `json:"fairPrice"`
	MarketPrice     float64               `json:"marketPrice"`
	QualityAdjusted float64               `json:"qualityAdjusted"`
	Savings         SustainabilitySavings `json:"savings"`
	Rationale       string                `json:"rationale"`
}
