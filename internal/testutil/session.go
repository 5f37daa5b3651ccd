// Package testutil provides test helpers: error-kind assertions and an
// in-memory session store.
package testutil

import (
	"sync"

	"spendtrack/internal/session"
)

// SessionStore is an in-memory session.Store for tests.
type SessionStore struct {
	mu   sync.Mutex
	sess *session.Session

	// TokenHistory records every token written via SetToken, so refresh
	// behavior can be asserted.
	TokenHistory []string
}

// NewSessionStore returns a store pre-populated with sess, which may be nil.
func NewSessionStore(sess *session.Session) *SessionStore {
	return &SessionStore{sess: sess}
}

// Current implements session.Store.
func (s *SessionStore) Current() (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, session.ErrNoSession
	}
	copied := *s.sess
	return &copied, nil
}

// Save implements session.Store.
func (s *SessionStore) Save(sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.sess = &copied
	return nil
}

// SetToken implements session.Store.
func (s *SessionStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return session.ErrNoSession
	}
	s.sess.Token = token
	s.TokenHistory = append(s.TokenHistory, token)
	return nil
}

// Clear implements session.Store.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}
