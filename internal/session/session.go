// Package session holds the client-side credential and profile bundle for a
// logged-in user and its persistence over the local store.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"spendtrack/internal/store"
)

// ErrNoSession is returned when no session is stored.
var ErrNoSession = errors.New("no active session")

// User is the profile part of a session.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the credential and profile bundle created on login or
// registration, mutated on token refresh, and destroyed on logout.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         User   `json:"user"`
}

// TokenExpiry extracts the expiry claim from the bearer token without
// verifying its signature. Verification is the backend's job; the client only
// uses the claim for display and diagnostics. The second return is false when
// the token is missing, malformed, or carries no expiry.
func (s *Session) TokenExpiry() (time.Time, bool) {
	if s == nil || s.Token == "" {
		return time.Time{}, false
	}
	tok, _, err := jwt.NewParser().ParseUnverified(s.Token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Store persists the session. Implementations must be safe for concurrent use.
type Store interface {
	// Current returns the stored session, or ErrNoSession when absent.
	Current() (*Session, error)
	// Save replaces the stored session and records the login timestamp.
	Save(*Session) error
	// SetToken replaces only the bearer token of the stored session.
	SetToken(token string) error
	// Clear removes the session. Clearing an absent session is a no-op.
	Clear() error
}

// FileStore persists sessions in the local key-value store.
type FileStore struct {
	kv *store.FileStore
}

// NewFileStore wraps the given key-value store.
func NewFileStore(kv *store.FileStore) *FileStore {
	return &FileStore{kv: kv}
}

// Current implements Store.
func (f *FileStore) Current() (*Session, error) {
	var s Session
	if err := f.kv.Get(store.KeySession, &s); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return &s, nil
}

// Save implements Store.
func (f *FileStore) Save(s *Session) error {
	if err := f.kv.Put(store.KeySession, s); err != nil {
		return err
	}
	return f.kv.Put(store.KeyLastLogin, time.Now().Format(time.RFC3339))
}

// SetToken implements Store.
func (f *FileStore) SetToken(token string) error {
	s, err := f.Current()
	if err != nil {
		return err
	}
	s.Token = token
	return f.kv.Put(store.KeySession, s)
}

// Clear implements Store.
func (f *FileStore) Clear() error {
	if err := f.kv.Delete(store.KeySession); err != nil {
		return err
	}
	return f.kv.Delete(store.KeyLastLogin)
}
