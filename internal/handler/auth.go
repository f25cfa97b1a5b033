package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/ecofinds/internal/auth"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/service"
)

// sessionCookieMaxAge keeps the browser cookie alive for a week. The
// session itself lives for the process lifetime; the cookie only decides
// how long the browser keeps sending it.
const sessionCookieMaxAge = int(7 * 24 * time.Hour / time.Second)

// AuthHandler exposes registration, login, logout and profile routes.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, logger: logger}
}

// setSessionCookie stores the opaque session token as an HttpOnly cookie
// so browser clients authenticate without handling the token themselves.
// API clients can ignore the cookie and send the token as a Bearer header.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleRegister creates an account and logs the new user straight in.
//
// HTTP: POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.AuthRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, model.AuthResponse{
		Token: result.Token,
		User:  result.User,
	})
}

// HandleLogin verifies credentials and issues a fresh session.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.AuthLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, model.AuthResponse{
		Token: result.Token,
		User:  result.User,
	})
}

// HandleLogout revokes the current session and clears the cookie.
// Revocation is idempotent, so a stale or missing token still logs out
// cleanly.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromRequest(r); token != "" {
		h.auth.Logout(token)
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleMe returns the authenticated user's own profile.
//
// HTTP: GET /api/auth/me
// Auth: required
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't panic if miswired.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdateMe updates the authenticated user's profile. Username is
// the only mutable field; an empty body is a no-op that returns the
// current record.
//
// HTTP: PUT /api/auth/me
// Auth: required
func (h *AuthHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var patch model.UpdateProfileRequest
	if !decodeJSON(w, r, &patch) {
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("profile updated", slog.String("userID", userID))
	writeJSON(w, http.StatusOK, user)
}

// HandleGetUser returns a user's public profile by ID. Password hashes
// never serialize, so the full record is safe to expose.
//
// HTTP: GET /api/users/{id}
func (h *AuthHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.auth.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
