// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage implements all of them on one
// embedded database; tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/ecofinds/internal/model"
)

// ProductFilter narrows a product listing. Zero values mean "no filter";
// both filters are ANDed when present.
type ProductFilter struct {
	Query    string         // case-insensitive substring match on title
	Category model.Category // exact category match
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUsername(ctx context.Context, id, username string) (*model.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	// List returns products newest-first.
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}

type CartRepository interface {
	// Items returns the user's cart oldest-first by time added.
	Items(ctx context.Context, userID string) ([]model.CartItem, error)
	// Add is idempotent: adding a product already in the cart is a no-op.
	Add(ctx context.Context, userID, productID string) error
	// Remove is a no-op when the product is not in the cart.
	Remove(ctx context.Context, userID, productID string) error
}

type PurchaseRepository interface {
	// ListByBuyer returns the buyer's purchases newest-first.
	ListByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error)
}

// CheckoutStore performs the one compound transition in the system:
// draining a cart into purchase records. Implementations must make the
// whole transition a single atomic unit — purchase inserts, product
// removals, counter increments, and the cart clear commit or fail
// together. Returns apperror.ErrEmptyCart when the cart has no entries.
//
// Cart entries whose product no longer exists (deleted, or claimed by a
// concurrent checkout) are skipped, not errors; the returned slice lists
// exactly the purchases that were created.
type CheckoutStore interface {
	Checkout(ctx context.Context, buyerID string) ([]model.Purchase, error)
}

// LeaderboardRepository projects user counters into ranked boards.
type LeaderboardRepository interface {
	TopSellers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	TopBuyers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}
