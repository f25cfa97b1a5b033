package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// SessionRegistry maps opaque session tokens to user IDs.
//
// Tokens are 32 random bytes, hex-encoded — unguessable and carrying no
// information about the user. The registry is the ONLY place that can turn
// a token back into a userID, which is what makes logout effective
// immediately: once Revoke removes the entry, the token is dead.
//
// Sessions live in process memory for the lifetime of the process. There
// is no TTL and no cross-process sharing; a restart logs everyone out and
// a multi-instance deployment would not share logins. That is a documented
// constraint of this system, not an accident.
//
// The registry is constructed once at startup and injected into whatever
// needs it (auth service, middleware). The RWMutex makes it safe for
// concurrent request handling.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]string // token -> userID
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]string),
	}
}

// Issue mints a new token for the given user and records it.
// A user may hold any number of concurrent sessions.
func (r *SessionRegistry) Issue(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generating session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	r.mu.Lock()
	r.sessions[token] = userID
	r.mu.Unlock()

	return token, nil
}

// Resolve returns the userID a token was issued to.
// The second return is false for unknown (or revoked) tokens.
func (r *SessionRegistry) Resolve(token string) (string, bool) {
	r.mu.RLock()
	userID, ok := r.sessions[token]
	r.mu.RUnlock()
	return userID, ok
}

// Revoke removes a token. Revoking an unknown token is not an error —
// logout is idempotent.
func (r *SessionRegistry) Revoke(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}
