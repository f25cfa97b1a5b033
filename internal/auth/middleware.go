package auth

import (
	"context"
	"net/http"
	"strings"
)

// SessionCookie is the name of the fallback auth cookie. The primary
// transport is the Authorization header; the cookie exists so the
// templated frontend works without a token store of its own.
const SessionCookie = "ecofinds_token"

// contextKey is an unexported type for context keys in this package.
// Using a package-private type means no other package can read or shadow
// the userID we store in the request context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces authentication on protected routes.
//
// It resolves the bearer token (or cookie) against the session registry
// and stores the userID in the request context. A missing token and an
// unrecognized token both produce 401 — the bodies differ ("unauthorized"
// vs "invalid session") but neither leaks anything useful.
func RequireAuth(sessions *SessionRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeAuthError(w, "unauthorized", "authentication required")
				return
			}

			userID, ok := sessions.Resolve(token)
			if !ok {
				writeAuthError(w, "invalid_session", "session is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) if the request did not pass RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// TokenFromRequest extracts the session token from the Authorization
// header ("Bearer <token>"), falling back to the session cookie.
// Returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, found := strings.CutPrefix(header, "Bearer "); found {
			return token
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// writeAuthError emits a 401 with the standard error body shape.
// Hand-rolled JSON keeps this package free of a handler dependency.
func writeAuthError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + code + `","message":"` + message + `"}`))
}
