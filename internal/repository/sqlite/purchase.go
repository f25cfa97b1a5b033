package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/repository"
)

// Compile-time checks.
var (
	_ repository.PurchaseRepository    = (*DB)(nil)
	_ repository.CheckoutStore         = (*DB)(nil)
	_ repository.LeaderboardRepository = (*DB)(nil)
)

// Checkout drains the buyer's cart into purchase records in ONE
// transaction. The sequence per cart entry:
//
//  1. read the product snapshot (price, owner) inside the transaction;
//  2. claim it with DELETE products WHERE id = ? — compare-and-remove.
//     Zero rows affected means someone else got there first (owner delete
//     or a concurrent checkout that committed before us): skip silently,
//     same as a dangling cart reference;
//  3. insert the Purchase with the snapshot price, and increment the
//     seller's total_sold and the buyer's total_bought.
//
// The cart is cleared entirely — skipped entries included — and
// everything commits together. Any error rolls the whole checkout back,
// so the counters can never drift from the purchase log.
//
// An empty cart returns apperror.ErrEmptyCart before any write happens.
func (db *DB) Checkout(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning checkout: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback()

	productIDs, err := cartProductIDs(ctx, tx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return nil, apperror.EmptyCart()
	}

	now := time.Now().UTC()
	created := make([]model.Purchase, 0, len(productIDs))

	for _, productID := range productIDs {
		var (
			sellerID string
			price    float64
		)
		err := tx.QueryRowContext(ctx,
			`SELECT owner_id, price FROM products WHERE id = ?`,
			productID,
		).Scan(&sellerID, &price)
		if err == sql.ErrNoRows {
			continue // product already sold or deleted
		}
		if err != nil {
			return nil, fmt.Errorf("sqlite: resolving cart product %s: %w", productID, err)
		}

		// Compare-and-remove: the DELETE is the claim. Inside this
		// transaction the row cannot change between the SELECT above and
		// here, but the RowsAffected check keeps the claim explicit and
		// self-contained.
		result, err := tx.ExecContext(ctx,
			`DELETE FROM products WHERE id = ?`, productID)
		if err != nil {
			return nil, fmt.Errorf("sqlite: claiming product %s: %w", productID, err)
		}
		claimed, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		if claimed == 0 {
			continue
		}

		purchase := model.Purchase{
			ID:          xid.New().String(),
			BuyerID:     buyerID,
			SellerID:    sellerID,
			ProductID:   productID,
			Price:       price,
			PurchasedAt: now,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO purchases (id, buyer_id, seller_id, product_id, price, purchased_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			purchase.ID,
			purchase.BuyerID,
			purchase.SellerID,
			purchase.ProductID,
			purchase.Price,
			purchase.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: recording purchase of %s: %w", productID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET total_sold = total_sold + 1 WHERE id = ?`, sellerID); err != nil {
			return nil, fmt.Errorf("sqlite: crediting seller %s: %w", sellerID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET total_bought = total_bought + 1 WHERE id = ?`, buyerID); err != nil {
			return nil, fmt.Errorf("sqlite: crediting buyer %s: %w", buyerID, err)
		}

		created = append(created, purchase)
	}

	// Clear the whole cart, skipped entries included.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ?`, buyerID); err != nil {
		return nil, fmt.Errorf("sqlite: clearing cart for %s: %w", buyerID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing checkout: %w", err)
	}

	return created, nil
}

func cartProductIDs(ctx context.Context, tx *sql.Tx, userID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT product_id FROM cart_items WHERE user_id = ? ORDER BY added_at ASC, product_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading cart for %s: %w", userID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning cart entry: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating cart: %w", err)
	}
	return ids, nil
}

// ListByBuyer returns the buyer's purchase history newest-first.
func (db *DB) ListByBuyer(ctx context.Context, buyerID string) ([]model.Purchase, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, buyer_id, seller_id, product_id, price, purchased_at
		 FROM purchases
		 WHERE buyer_id = ?
		 ORDER BY purchased_at DESC, id DESC`,
		buyerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing purchases for %s: %w", buyerID, err)
	}
	defer rows.Close()

	purchases := make([]model.Purchase, 0)
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.BuyerID, &p.SellerID, &p.ProductID, &p.Price, &p.PurchasedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating purchases: %w", err)
	}

	return purchases, nil
}

// TopSellers returns up to limit users ranked by total_sold descending.
// created_at ASC is the stable tie-break: ties keep account-creation
// order, so re-reading the board never reshuffles equals.
func (db *DB) TopSellers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return db.leaderboard(ctx, "total_sold", limit)
}

// TopBuyers returns up to limit users ranked by total_bought descending.
func (db *DB) TopBuyers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return db.leaderboard(ctx, "total_bought", limit)
}

func (db *DB) leaderboard(ctx context.Context, counter string, limit int) ([]model.LeaderboardEntry, error) {
	// counter is one of two compile-time constants, never user input, so
	// interpolating the column name is safe.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, `+counter+`
		 FROM users
		 ORDER BY `+counter+` DESC, created_at ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: ranking users by %s: %w", counter, err)
	}
	defer rows.Close()

	entries := make([]model.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating leaderboard: %w", err)
	}

	return entries, nil
}
