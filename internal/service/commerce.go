package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/repository"
)

// LeaderboardSize is how many entries each board carries.
const LeaderboardSize = 10

// CommerceService owns carts, checkout, purchase history, and the
// leaderboards — everything downstream of "I want to buy this".
//
// Checkout itself is delegated to the CheckoutStore, which runs the whole
// cart-to-purchases transition atomically; this service only orchestrates
// and logs.
type CommerceService struct {
	carts       repository.CartRepository
	purchases   repository.PurchaseRepository
	checkout    repository.CheckoutStore
	leaderboard repository.LeaderboardRepository
	logger      *slog.Logger
}

// NewCommerceService creates a CommerceService.
func NewCommerceService(
	carts repository.CartRepository,
	purchases repository.PurchaseRepository,
	checkout repository.CheckoutStore,
	leaderboard repository.LeaderboardRepository,
	logger *slog.Logger,
) *CommerceService {
	return &CommerceService{
		carts:       carts,
		purchases:   purchases,
		checkout:    checkout,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Cart returns the user's cart, oldest entry first.
func (s *CommerceService) Cart(ctx context.Context, userID string) ([]model.CartItem, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}
	return items, nil
}

// AddToCart puts a product in the user's cart and returns the updated
// cart. Adding a product that is already there is a no-op, which is what
// makes a double-click on "add to cart" harmless.
//
// The product is NOT checked for existence here — a cart entry is a soft
// reference, and checkout tolerates dangling ones anyway.
func (s *CommerceService) AddToCart(ctx context.Context, userID, productID string) ([]model.CartItem, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, apperror.ValidationFailed("productId", "productId is required")
	}

	if err := s.carts.Add(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("adding to cart: %w", err)
	}
	return s.Cart(ctx, userID)
}

// RemoveFromCart takes a product out of the cart and returns the updated
// cart. Removing an absent product is a no-op.
func (s *CommerceService) RemoveFromCart(ctx context.Context, userID, productID string) ([]model.CartItem, error) {
	if err := s.carts.Remove(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("removing from cart: %w", err)
	}
	return s.Cart(ctx, userID)
}

// Checkout converts the buyer's cart into purchase records.
//
// Returns ErrEmptyCart for an empty cart. Cart entries whose product is
// gone (deleted, or bought by somebody faster) are skipped; the returned
// purchases list exactly what was bought, so a partially-resolvable cart
// still checks out successfully for the resolvable subset.
func (s *CommerceService) Checkout(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	purchases, err := s.checkout.Checkout(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("checkout completed",
		slog.String("buyerID", buyerID),
		slog.Int("purchases", len(purchases)),
	)

	return purchases, nil
}

// Purchases returns the buyer's own purchase history, newest first.
func (s *CommerceService) Purchases(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	purchases, err := s.purchases.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	return purchases, nil
}

// Leaderboard projects the user counters into the two top-10 boards.
// Pure read — the counters were maintained at checkout time.
func (s *CommerceService) Leaderboard(ctx context.Context) (*model.LeaderboardResponse, error) {
	sellers, err := s.leaderboard.TopSellers(ctx, LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("ranking sellers: %w", err)
	}
	buyers, err := s.leaderboard.TopBuyers(ctx, LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("ranking buyers: %w", err)
	}

	return &model.LeaderboardResponse{
		TopSellers: sellers,
		TopBuyers:  buyers,
	}, nil
}
