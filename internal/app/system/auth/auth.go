// Package auth provides cookie-session management and the middleware that
// loads the current user into the request context.
//
// The SessionManager is an explicit object created by the composition root
// (bootstrap.BuildHandler) and passed to the features that need it; there is
// no package-level session store.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys.
const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is the identity injected into r.Context() for signed-in users.
type SessionUser struct {
	ID       string
	Username string
	Email    string
	Role     string
}

// UserFetcher loads fresh user data for a stored user ID on each request,
// so role changes and disabled accounts take effect immediately.
// Implementations return nil when the user no longer exists or is disabled.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// SessionToucher marks the user's tracked login session as active.
// Implementations are best-effort; a failed touch must not fail the request.
type SessionToucher interface {
	TouchSession(ctx context.Context, userID string)
}

// SessionManager owns the cookie store and the session middleware.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	log     *zap.Logger
	fetcher UserFetcher
	toucher SessionToucher
}

// NewSessionManager builds a SessionManager backed by a gorilla cookie store.
//
// An empty sessionKey is rejected in production; in dev a random per-boot key
// is generated so the template runs out of the box (sessions reset on
// restart). The secure flag controls Secure cookies and the SameSite mode.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		if secure {
			return nil, fmt.Errorf("session key is empty; provide >=32 random chars")
		}
		sessionKey = string(securecookie.GenerateRandomKey(32))
		logger.Warn("session key not configured; generated a per-boot key (sessions reset on restart)")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher installs a fetcher used by LoadSessionUser to refresh user
// data on each request. Without a fetcher only the stored user ID is exposed.
func (m *SessionManager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// SetSessionToucher installs a toucher called by LoadSessionUser on each
// authenticated request, keeping the tracked session's activity window fresh
// for the active-session counter and the idle-cleanup job.
func (m *SessionManager) SetSessionToucher(t SessionToucher) {
	m.toucher = t
}

// Store exposes the underlying cookie store (logout needs its options to
// build a matching deletion cookie).
func (m *SessionManager) Store() *sessions.CookieStore {
	return m.store
}

// SignIn marks the session as authenticated for the given user ID.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// Decode failed (e.g. key rotation); still emit a deletion cookie.
		m.log.Warn("session decode failed during sign-out", zap.Error(err))
	}
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helpers                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into the request context for handler tests,
// bypassing the session middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser injects the user into context if they are logged in.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			userID := getString(sess, userIDKey)

			var u *SessionUser
			if m.fetcher != nil {
				// A nil result means the user was deleted or disabled
				// since sign-in. Treat as anonymous; the cookie dies on
				// logout or expiry.
				u = m.fetcher.FetchUser(r.Context(), userID)
			} else if userID != "" {
				u = &SessionUser{ID: userID}
			}

			if u != nil {
				r = withUser(r, u)
				if m.toucher != nil {
					m.toucher.TouchSession(r.Context(), userID)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireRole ensures the context user has one of the allowed roles.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)

			if !ok {
				if wantsHTML(r) {
					ret := url.QueryEscape(currentURI(r))
					http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if _, has := set[strings.ToLower(u.Role)]; !has {
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}
