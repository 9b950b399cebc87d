// internal/testutil/http.go
package testutil

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/system/auth"
)

// NewTestSessionManager builds a SessionManager with a random per-test key.
func NewTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("", "panelboard_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("create test session manager: %v", err)
	}
	return sm
}

// WithUser attaches a signed-in user to the request context, bypassing the
// session middleware.
func WithUser(r *http.Request, id, username, role string) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:       id,
		Username: username,
		Role:     role,
	})
}
