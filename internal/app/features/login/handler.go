// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/store/activity"
	"github.com/panelboard/panelboard/internal/app/store/sessions"
	userstore "github.com/panelboard/panelboard/internal/app/store/users"
	"github.com/panelboard/panelboard/internal/app/system/auth"
	"github.com/panelboard/panelboard/internal/app/system/timeouts"
)

type Handler struct {
	Users      *userstore.Store
	Sessions   *sessions.Store
	Activity   *activity.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, sessStore *sessions.Store, activityStore *activity.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		Sessions:   sessStore,
		Activity:   activityStore,
		SessionMgr: sessionMgr,
		Log:        logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLoginPost handles POST /login with a JSON body of
// {"username": "...", "password": "..."}.
//
// On success the session cookie is set and the response mirrors
// GET /api/frontend/user so the frontend can update its state without a
// second round trip. All credential failures answer 401 with the same
// message regardless of cause.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.VerifyPassword(ctx, req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, userstore.ErrBadCredentials) {
			h.Log.Error("login: verify password", zap.Error(err))
		}
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.Log.Error("login: save session", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		writeError(w, http.StatusInternalServerError, "unable to create session")
		return
	}

	// Session tracking and the activity feed are best-effort; a failure
	// here must not undo a successful sign-in.
	if _, err := h.Sessions.Create(ctx, user.ID, clientIP(r), r.UserAgent()); err != nil {
		h.Log.Warn("login: create session record", zap.Error(err), zap.String("user_id", user.ID.Hex()))
	}
	uid := user.ID
	if err := h.Activity.Record(ctx, &uid, activity.ActionLogin); err != nil {
		h.Log.Warn("login: record activity", zap.Error(err), zap.String("user_id", user.ID.Hex()))
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("username", user.Username))

	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"id":              user.ID.Hex(),
		"username":        user.Username,
		"email":           user.Email,
		"role":            user.Role,
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// clientIP prefers the first X-Forwarded-For hop when behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
