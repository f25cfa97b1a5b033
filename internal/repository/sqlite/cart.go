package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/repository"
)

// Compile-time check that *DB implements repository.CartRepository.
var _ repository.CartRepository = (*DB)(nil)

// Items returns the user's cart entries oldest-first.
// An empty cart is an empty slice, never an error.
func (db *DB) Items(ctx context.Context, userID string) ([]model.CartItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT product_id, added_at
		 FROM cart_items
		 WHERE user_id = ?
		 ORDER BY added_at ASC, product_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing cart for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := make([]model.CartItem, 0)
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning cart row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating cart: %w", err)
	}

	return items, nil
}

// Add puts a product in the user's cart. The (user_id, product_id)
// primary key plus INSERT OR IGNORE makes this idempotent: the second add
// of the same product changes nothing, not even added_at.
func (db *DB) Add(ctx context.Context, userID, productID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO cart_items (user_id, product_id, added_at)
		 VALUES (?, ?, ?)`,
		userID,
		productID,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding product %s to cart: %w", productID, err)
	}
	return nil
}

// Remove takes a product out of the user's cart. Removing a product that
// isn't there is a no-op, so no RowsAffected check here.
func (db *DB) Remove(ctx context.Context, userID, productID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID,
		productID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing product %s from cart: %w", productID, err)
	}
	return nil
}
