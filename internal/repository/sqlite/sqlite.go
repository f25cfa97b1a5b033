// Package sqlite implements the repository interfaces on an embedded
// SQLite database.
//
// Checkout is a multi-collection mutation: it removes products, appends
// purchases, bumps two users' counters, and clears a cart. That whole
// transition must commit or roll back as one unit, so the store is a
// transactional database rather than flat files.
//
// The driver is modernc.org/sqlite, a pure Go translation of SQLite, so
// the binary builds without CGo.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under
	// the name "sqlite" at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface. One type for all of them keeps checkout simple — the
// transaction can touch products, purchases, users, and cart_items
// without crossing repository boundaries.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite allows one writer at a time, and with ":memory:" every pool
	// connection would get its own empty database. A single connection
	// sidesteps both.
	conn.SetMaxOpenConns(1)

	// Force an immediate connection so a bad path fails here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress — the
	// default journal mode locks the whole database during writes.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. The server defers this on shutdown so
// the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe
// to run on every start.
func (db *DB) migrate() error {
	// The UNIQUE index on lower(email) enforces the case-insensitive
	// uniqueness invariant at the storage layer, backstopping the
	// check-then-insert in the auth service.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL,
			username      TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			total_sold    INTEGER NOT NULL DEFAULT 0,
			total_bought  INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL,
			updated_at    DATETIME NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users(lower(email));
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id          TEXT PRIMARY KEY,
			owner_id    TEXT NOT NULL REFERENCES users(id),
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			category    TEXT NOT NULL,
			price       REAL NOT NULL,
			image_url   TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);
		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	`)
	if err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}

	// product_id deliberately has NO foreign key: cart entries are soft
	// references that may outlive the product (owner delete, or another
	// buyer's checkout). Checkout skips the dangling ones.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS cart_items (
			user_id    TEXT NOT NULL REFERENCES users(id),
			product_id TEXT NOT NULL,
			added_at   DATETIME NOT NULL,
			PRIMARY KEY (user_id, product_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating cart_items table: %w", err)
	}

	// product_id here is a historical reference, not a foreign key — the
	// product row is deleted in the same transaction that inserts the
	// purchase.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS purchases (
			id           TEXT PRIMARY KEY,
			buyer_id     TEXT NOT NULL REFERENCES users(id),
			seller_id    TEXT NOT NULL REFERENCES users(id),
			product_id   TEXT NOT NULL,
			price        REAL NOT NULL,
			purchased_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_purchases_buyer_id ON purchases(buyer_id);
	`)
	if err != nil {
		return fmt.Errorf("creating purchases table: %w", err)
	}

	return nil
}
