// Package session manages client-correlated session state. Each
// session is identified by an opaque random token held server-side;
// the client carries the token in an HMAC-signed cookie so a forged
// or tampered value never reaches the store lookup.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/awnumar/memguard"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "authgate_session"

// State is the server-side session state: a single identity claim.
type State struct {
	Username  string
	CreatedAt time.Time
}

// Store abstracts session CRUD so that sessions can be stored
// in-memory (default) or in another backing store.
type Store interface {
	// Get retrieves a session by token.
	Get(token string) (State, bool)
	// Put creates or updates a session for the given token.
	Put(token string, state State)
	// Delete removes a session by token. Deleting a missing token is a
	// no-op.
	Delete(token string)
}

// Manager issues, validates and clears identity claims. The signing
// secret is injected at construction and kept in a memguard enclave
// (encrypted at rest in memory); there is no package-level secret.
type Manager struct {
	secret *memguard.Enclave
	store  Store
}

// NewManager creates a session manager signing cookies with the given
// secret. The secret slice is wiped as it moves into the enclave.
func NewManager(secret []byte, store Store) (*Manager, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	return &Manager{
		secret: memguard.NewEnclave(secret),
		store:  store,
	}, nil
}

// SetIdentity associates username with the caller's session and writes
// the signed session cookie. Subsequent requests presenting the cookie
// carry the same identity until cleared.
func (m *Manager) SetIdentity(w http.ResponseWriter, r *http.Request, username string) error {
	token := uuid.NewString()
	sig, err := m.sign(token)
	if err != nil {
		return err
	}
	m.store.Put(token, State{Username: username, CreatedAt: time.Now()})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token + "." + sig,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Identity returns the username claimed by the request's session, if
// any. A missing, malformed, forged or unknown cookie reads as no
// identity; no error is surfaced.
func (m *Manager) Identity(r *http.Request) (string, bool) {
	token, ok := m.tokenFromRequest(r)
	if !ok {
		return "", false
	}
	state, ok := m.store.Get(token)
	if !ok {
		return "", false
	}
	return state.Username, true
}

// ClearIdentity removes the request's session state, if any, and
// expires the cookie. Clearing an already-empty session is a no-op.
func (m *Manager) ClearIdentity(w http.ResponseWriter, r *http.Request) {
	if token, ok := m.tokenFromRequest(r); ok {
		m.store.Delete(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// tokenFromRequest extracts and authenticates the session token from
// the cookie, rejecting any value whose MAC does not verify.
func (m *Manager) tokenFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	token, sig, found := strings.Cut(cookie.Value, ".")
	if !found || token == "" {
		return "", false
	}
	expected, err := m.sign(token)
	if err != nil {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return token, true
}

func (m *Manager) sign(token string) (string, error) {
	key, err := m.secret.Open()
	if err != nil {
		return "", fmt.Errorf("opening session secret: %w", err)
	}
	defer key.Destroy()
	mac := hmac.New(sha256.New, key.Bytes())
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		return true
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Forwarded")), "proto=https")
}
