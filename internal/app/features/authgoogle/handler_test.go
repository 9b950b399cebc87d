// internal/app/features/authgoogle/handler_test.go
package authgoogle_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/features/authgoogle"
	"github.com/panelboard/panelboard/internal/testutil"
)

func newTestHandler(t *testing.T, clientID, clientSecret string) *authgoogle.Handler {
	t.Helper()
	return authgoogle.NewHandler(
		nil, nil, nil,
		testutil.NewTestSessionManager(t),
		clientID,
		clientSecret,
		"http://localhost:8080",
		false,
		zap.NewNop(),
	)
}

func TestIsConfigured(t *testing.T) {
	if !newTestHandler(t, "id", "secret").IsConfigured() {
		t.Error("IsConfigured() should return true with client ID and secret")
	}
	if newTestHandler(t, "", "").IsConfigured() {
		t.Error("IsConfigured() should return false without credentials")
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h := newTestHandler(t, "", "")

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()

	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=google_not_configured") {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()

	h.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status %d, got %d", http.StatusTemporaryRedirect, rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "accounts.google.com") {
		t.Errorf("Location should point at Google, got %q", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Errorf("Location should carry a state parameter, got %q", loc)
	}

	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "panelboard_oauth_state" {
			stateCookie = c
		}
	}
	if stateCookie == nil {
		t.Fatal("expected state cookie to be set")
	}
	if !strings.Contains(loc, "state="+stateCookie.Value) {
		t.Error("redirect state should match the cookie value")
	}
}

func TestServeCallback_StateMismatch(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := httptest.NewRequest("GET", "/auth/google/callback?state=forged&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: "panelboard_oauth_state", Value: "genuine"})
	rec := httptest.NewRecorder()

	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=invalid_state") {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeCallback_ProviderError(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := httptest.NewRequest("GET", "/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()

	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=google_denied") {
		t.Errorf("Location: got %q", loc)
	}
}
