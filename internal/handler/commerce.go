package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/ecofinds/internal/auth"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/service"
)

// CommerceHandler exposes the cart, checkout, purchase-history and
// leaderboard routes.
type CommerceHandler struct {
	commerce *service.CommerceService
	logger   *slog.Logger
}

func NewCommerceHandler(commerce *service.CommerceService, logger *slog.Logger) *CommerceHandler {
	return &CommerceHandler{commerce: commerce, logger: logger}
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
	}
	return userID, ok
}

// HandleCart returns the caller's cart, oldest entry first.
//
// HTTP: GET /api/cart
// Auth: required
func (h *CommerceHandler) HandleCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.commerce.Cart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleAddToCart adds a product reference to the caller's cart and
// returns the updated cart. Adding the same product twice is a no-op.
//
// HTTP: POST /api/cart
// Auth: required
func (h *CommerceHandler) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req model.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := h.commerce.AddToCart(r.Context(), userID, req.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}

	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleRemoveFromCart drops a product from the caller's cart and
// returns the updated cart. Removing an absent product is a no-op.
//
// HTTP: DELETE /api/cart/{productId}
// Auth: required
func (h *CommerceHandler) HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productId")

	items, err := h.commerce.RemoveFromCart(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}

	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleCheckout converts the caller's cart into purchase records.
// Cart entries whose product was already sold or delisted are skipped;
// the response lists exactly the purchases that went through.
//
// HTTP: POST /api/checkout
// Auth: required
func (h *CommerceHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	purchases, err := h.commerce.Checkout(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if purchases == nil {
		purchases = []model.Purchase{}
	}
	h.logger.Info("checkout completed",
		slog.String("buyerID", userID),
		slog.Int("purchases", len(purchases)),
	)
	writeJSON(w, http.StatusOK, model.CheckoutResponse{OK: true, Purchases: purchases})
}

// HandlePurchases returns the caller's purchase history, newest first.
//
// HTTP: GET /api/purchases
// Auth: required
func (h *CommerceHandler) HandlePurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	purchases, err := h.commerce.Purchases(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if purchases == nil {
		purchases = []model.Purchase{}
	}
	writeJSON(w, http.StatusOK, purchases)
}

// HandleLeaderboard returns the top-ten sellers and buyers. Public —
// the boards only expose usernames and counts.
//
// HTTP: GET /api/leaderboard
func (h *CommerceHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	boards, err := h.commerce.Leaderboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, boards)
}
