package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/ecofinds/internal/model"
)

// newTestDB opens a fresh in-memory database for one test. Fast, isolated,
// and destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, email, username string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$04$fakehashforrepositorytests",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return user
}

// createTestProduct inserts a product owned by ownerID.
func createTestProduct(t *testing.T, db *DB, ownerID, title string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{
		OwnerID:     ownerID,
		Title:       title,
		Description: "test listing",
		Category:    model.CategoryOther,
		Price:       price,
		ImageURL:    "/placeholder.svg",
	}
	if err := db.Create(context.Background(), product); err != nil {
		t.Fatalf("failed to create test product %s: %v", title, err)
	}
	return product
}

// addToCart puts a product in a user's cart and fails the test on error.
func addToCart(t *testing.T, db *DB, userID, productID string) {
	t.Helper()
	if err := db.Add(context.Background(), userID, productID); err != nil {
		t.Fatalf("failed to add product %s to cart: %v", productID, err)
	}
}
