package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/auth"
	"github.com/sakif/ecofinds/internal/model"
)

// =========================================================================
// MOCK USER REPOSITORY
// =========================================================================

type mockUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperror.DuplicateEmail()
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) UpdateUsername(_ context.Context, id, username string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	u.Username = username
	u.UpdatedAt = time.Now()
	result := *u
	return &result, nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo, *auth.SessionRegistry) {
	t.Helper()
	repo := newMockUserRepo()
	sessions := auth.NewSessionRegistry()
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	svc := NewAuthService(repo, sessions, passwords, testLogger())
	return svc, repo, sessions
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.User.ID == "" {
		t.Error("expected user to have an ID")
	}
	if result.User.TotalSold != 0 || result.User.TotalBought != 0 {
		t.Error("new user counters should be zero")
	}
	if result.Token == "" {
		t.Fatal("Register() should issue a session token")
	}

	userID, ok := sessions.Resolve(result.Token)
	if !ok || userID != result.User.ID {
		t.Errorf("token resolves to %q, want %q", userID, result.User.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "ann@example.com", "pw2", "ann2")
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Errorf("second Register() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegister_DuplicateEmailDifferentCase(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "ANN@Example.COM", "pw2", "ann2")
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Errorf("Register() with re-cased email error = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	cases := []struct {
		name                      string
		email, password, username string
	}{
		{"missing email", "", "pw", "ann"},
		{"invalid email", "not-an-email", "pw", "ann"},
		{"missing password", "ann@example.com", "", "ann"},
		{"missing username", "ann@example.com", "pw", ""},
		{"password too long", "ann@example.com", strings.Repeat("a", 73), "ann"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password, tc.username)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_CorrectPassword(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)

	registered, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "ann@example.com", "pw1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	userID, ok := sessions.Resolve(result.Token)
	if !ok || userID != registered.User.ID {
		t.Errorf("login token resolves to %q, want %q", userID, registered.User.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "ann@example.com", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Login() error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(context.Background(), "ghost@example.com", "pw1")
	_, errWrong := svc.Login(context.Background(), "ann@example.com", "wrong")

	if !errors.Is(errUnknown, apperror.ErrUnauthorized) {
		t.Errorf("unknown email error = %v, want ErrUnauthorized", errUnknown)
	}
	if errUnknown == nil || errWrong == nil || errUnknown.Error() != errWrong.Error() {
		t.Errorf("error messages differ: %q vs %q — this leaks which emails exist",
			errUnknown, errWrong)
	}
}

// =========================================================================
// LOGOUT TESTS
// =========================================================================

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	svc.Logout(result.Token)

	if _, ok := sessions.Resolve(result.Token); ok {
		t.Error("token still resolves after Logout()")
	}

	// Idempotent — a second logout is fine.
	svc.Logout(result.Token)
}

// =========================================================================
// PROFILE TESTS
// =========================================================================

func TestUpdateProfile_Username(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	newName := "annie"
	updated, err := svc.UpdateProfile(context.Background(), result.User.ID,
		model.UpdateProfileRequest{Username: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Username != "annie" {
		t.Errorf("Username = %q, want %q", updated.Username, "annie")
	}
}

func TestUpdateProfile_NilPatchLeavesUserUnchanged(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), result.User.ID, model.UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Username != "ann" {
		t.Errorf("Username = %q, want unchanged %q", updated.Username, "ann")
	}
}

func TestUpdateProfile_EmptyUsernameRejected(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "ann@example.com", "pw1", "ann")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	empty := "   "
	_, err = svc.UpdateProfile(context.Background(), result.User.ID,
		model.UpdateProfileRequest{Username: &empty})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("UpdateProfile() error = %v, want ErrValidation", err)
	}
}
