// client/session.go
package client

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// userLoadFailedMsg is the only failure text shown to users; the underlying
// cause goes to the log and SessionStore.LastError.
const userLoadFailedMsg = "failed to load user"

// guestName is the display name when no session or username is available.
const guestName = "Guest"

// SessionStore holds the current authenticated user, or its absence, plus
// loading and error flags. Create one at the composition root and share it
// by reference; all methods are safe for concurrent use.
type SessionStore struct {
	c *Client

	mu      sync.RWMutex
	user    *Session
	loading bool
	errMsg  string
	lastErr *FetchError
}

// NewSessionStore creates an empty store bound to the given client.
func NewSessionStore(c *Client) *SessionStore {
	return &SessionStore{c: c}
}

// FetchUser issues one GET to the user endpoint and replaces the session
// wholesale on success. On failure the prior session value is left
// untouched, the error message is set, and the cause is logged. Loading is
// false when this returns, whatever the outcome. No retry.
func (s *SessionStore) FetchUser(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.lastErr = nil
	s.mu.Unlock()

	var sess Session
	ferr := s.c.getJSON(ctx, "/api/frontend/user", &sess)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if ferr != nil {
		s.c.Log.Warn("user fetch failed", zap.String("kind", ferr.Kind.String()), zap.Error(ferr))
		s.errMsg = userLoadFailedMsg
		s.lastErr = ferr
		return ferr
	}

	s.user = &sess
	return nil
}

// ClearUser synchronously drops the session value. Loading and error flags
// are left as they are.
func (s *SessionStore) ClearUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// IsLoggedIn reports whether an authenticated session is held. Holding a
// session value alone is not enough: the user endpoint answers 200 for
// guests too, so the session's IsAuthenticated flag decides.
func (s *SessionStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAuthenticated
}

// DisplayName returns the session's username, or "Guest" when no session is
// held or the username field is empty.
func (s *SessionStore) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || s.user.Username == "" {
		return guestName
	}
	return s.user.Username
}

// User returns a copy of the current session, or nil.
func (s *SessionStore) User() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether a fetch is in progress.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ErrorMessage returns the fixed user-facing message from the last failed
// fetch, or "".
func (s *SessionStore) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// LastError returns the classified cause of the last failed fetch, or nil.
func (s *SessionStore) LastError() *FetchError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
