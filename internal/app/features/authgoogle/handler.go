// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/panelboard/panelboard/internal/app/store/activity"
	"github.com/panelboard/panelboard/internal/app/store/sessions"
	userstore "github.com/panelboard/panelboard/internal/app/store/users"
	"github.com/panelboard/panelboard/internal/app/system/auth"
	"github.com/panelboard/panelboard/internal/app/system/normalize"
	"github.com/panelboard/panelboard/internal/app/system/timeouts"
	"github.com/panelboard/panelboard/internal/domain/models"
)

// stateCookie carries the CSRF state between the redirect to Google and the
// callback.
const stateCookie = "panelboard_oauth_state"

// Handler handles Google OAuth sign-in for accounts provisioned with
// auth_method "google".
type Handler struct {
	Users      *userstore.Store
	Sessions   *sessions.Store
	Activity   *activity.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string
	Secure       bool
}

// NewHandler creates a Google OAuth handler. baseURL is the externally
// visible origin, e.g. "https://panelboard.example.com".
func NewHandler(
	users *userstore.Store,
	sessStore *sessions.Store,
	activityStore *activity.Store,
	sessionMgr *auth.SessionManager,
	clientID, clientSecret, baseURL string,
	secure bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:        users,
		Sessions:     sessStore,
		Activity:     activityStore,
		SessionMgr:   sessionMgr,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		Secure:       secure,
	}
}

// IsConfigured returns true if Google OAuth credentials are set.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// ServeLogin handles GET /auth/google by redirecting to Google's consent
// screen with a fresh CSRF state.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback. The state cookie must
// match the state query parameter before the code is exchanged.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if state == "" || err != nil || cookie.Value != state {
		h.Log.Warn("invalid or missing OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	// One-shot state: expire the cookie regardless of outcome.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Path:     "/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(r.Context(), code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.findGoogleUser(ctx, googleUser.Email)
	if err != nil {
		h.Log.Info("Google OAuth: no usable account", zap.String("email", googleUser.Email), zap.Error(err))
		http.Redirect(w, r, "/login?error=no_account", http.StatusSeeOther)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.Log.Error("google login: save session", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if _, err := h.Sessions.Create(ctx, user.ID, r.RemoteAddr, r.UserAgent()); err != nil {
		h.Log.Warn("google login: create session record", zap.Error(err))
	}
	uid := user.ID
	if err := h.Activity.Record(ctx, &uid, activity.ActionLogin); err != nil {
		h.Log.Warn("google login: record activity", zap.Error(err))
	}

	h.Log.Info("user signed in via google",
		zap.String("user_id", user.ID.Hex()),
		zap.String("username", user.Username))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// findGoogleUser locates an active account for the verified Google email.
func (h *Handler) findGoogleUser(ctx context.Context, email string) (*models.User, error) {
	u, err := h.Users.GetByGoogleEmail(ctx, normalize.Email(email))
	if err != nil {
		return nil, err
	}
	if u.Status != models.StatusActive {
		return nil, fmt.Errorf("account %s is not active", u.ID.Hex())
	}
	return u, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
