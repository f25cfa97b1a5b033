// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; services validate, enforce the
// rules, and talk to repositories through interfaces. Nothing in this
// package knows about status codes or JSON — it returns domain errors
// (apperror sentinels) that the handler layer translates.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/auth"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/repository"
)

// MaxPasswordBytes mirrors bcrypt's input limit.
const MaxPasswordBytes = 72

// AuthService owns registration, login, sessions, and profile edits.
//
// Dependencies (injected via NewAuthService):
//   - users     repository.UserRepository — account records
//   - sessions  *auth.SessionRegistry     — opaque token issuance/lookup
//   - passwords *auth.PasswordService     — bcrypt hashing
//   - logger    *slog.Logger              — structured logging
type AuthService struct {
	users     repository.UserRepository
	sessions  *auth.SessionRegistry
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions *auth.SessionRegistry,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued session token so the
// handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account and logs it in.
//
// Fails with ErrDuplicateEmail when the email is already registered, in
// any casing. The check-then-insert here is backed by a unique index on
// lower(email) in the store, so even two racing registrations produce
// exactly one account.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "email is not valid")
	}
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if len(password) > MaxPasswordBytes {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be %d bytes or fewer", MaxPasswordBytes))
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperror.DuplicateEmail()
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking email %s: %w", email, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing session for %s: %w", user.ID, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a session token.
//
// Unknown email and wrong password return the SAME error — the response
// must not let a caller enumerate registered addresses.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperror.ValidationFailed("email", "email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing session for %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// Logout revokes the session token. Idempotent — revoking an unknown
// token succeeds silently.
func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
}

// GetUserByID returns the user for the given internal ID. Used by the
// /me handler after the middleware resolves the session token.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a profile patch. Username is the only mutable
// field; a nil patch value leaves it unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch model.UpdateProfileRequest) (*model.User, error) {
	if patch.Username == nil {
		// Nothing to change — return the current record.
		return s.users.GetUserByID(ctx, userID)
	}

	username := strings.TrimSpace(*patch.Username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username must not be empty")
	}

	user, err := s.users.UpdateUsername(ctx, userID, username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", slog.String("userID", userID))
	return user, nil
}
