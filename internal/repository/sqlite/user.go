package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/repository"
)

// Compile-time check that *DB implements repository.UserRepository.
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user. The caller provides email, username, and
// password hash; ID and timestamps are generated here. Counters start at
// zero.
//
// A violation of the unique email index is translated to DuplicateEmail
// so that two racing registrations for the same address still yield
// exactly one success — the service's check-then-insert alone cannot
// guarantee that.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password_hash, total_sold, total_bought, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, 0, ?, ?)`,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "idx_users_email_lower") || isUniqueViolation(err, "users.email") {
			return apperror.DuplicateEmail()
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	user.TotalSold = 0
	user.TotalBought = 0
	return nil
}

// GetUserByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email, compared case-insensitively —
// "Alice@x.com" and "alice@X.COM" are the same account.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE lower(email) = lower(?)`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, username, password_hash, total_sold, total_bought, created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.TotalSold,
		&u.TotalBought,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	return &u, nil
}

// UpdateUsername sets the user's username and bumps updated_at, returning
// the full updated record. Username is the only mutable profile field.
func (db *DB) UpdateUsername(ctx context.Context, id, username string) (*model.User, error) {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET username = ?, updated_at = ? WHERE id = ?`,
		username,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, apperror.NotFound("user", id)
	}

	return db.GetUserByID(ctx, id)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure involving the named index or column. The driver does not export
// typed constraint errors, so this falls back to message matching.
func isUniqueViolation(err error, name string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, name)
}
