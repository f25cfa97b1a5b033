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

// Compile-time check that *DB implements repository.ProductRepository.
var _ repository.ProductRepository = (*DB)(nil)

// Create inserts a new product listing. ID and timestamps are generated
// here; validation (ownership, category, price rounding) happens in the
// service layer before the record gets this far.
func (db *DB) Create(ctx context.Context, product *model.Product) error {
	product.ID = xid.New().String()

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO products (id, owner_id, title, description, category, price, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.OwnerID,
		product.Title,
		product.Description,
		string(product.Category),
		product.Price,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting product: %w", err)
	}

	return nil
}

// GetByID retrieves a single product.
// Returns apperror.ErrNotFound if no product exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description, category, price, image_url, created_at, updated_at
		 FROM products
		 WHERE id = ?`,
		id,
	).Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("product", id)
		}
		return nil, fmt.Errorf("sqlite: getting product %s: %w", id, err)
	}

	return &p, nil
}

// List returns products newest-first, optionally filtered by title
// substring (case-insensitive) and exact category. The filters are ANDed.
//
// SQLite's LIKE is case-insensitive for ASCII by default, but we lower()
// both sides explicitly so the behavior doesn't depend on the
// case_sensitive_like pragma.
func (db *DB) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := `SELECT id, owner_id, title, description, category, price, image_url, created_at, updated_at
	          FROM products`
	var (
		conds []string
		args  []any
	)

	if filter.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, string(filter.Category))
	}
	if filter.Query != "" {
		conds = append(conds, `instr(lower(title), lower(?)) > 0`)
		args = append(args, filter.Query)
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	// id is a secondary sort key so equal timestamps order consistently.
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Category,
			&p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}

	return products, nil
}

// Update rewrites the mutable fields of a product and bumps updated_at.
// The service layer has already merged the patch into the record, so this
// writes the full field set. ID, owner, and created_at never change.
func (db *DB) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE products
		 SET title = ?, description = ?, category = ?, price = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		product.Title,
		product.Description,
		string(product.Category),
		product.Price,
		product.ImageURL,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating product %s: %w", product.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("product", product.ID)
	}

	return nil
}

// Delete removes a product from the catalog.
// RowsAffected distinguishes "deleted" from "was never there".
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM products WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting product %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("product", id)
	}

	return nil
}
