// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/app/store/activity"
	"github.com/panelboard/panelboard/internal/app/store/sessions"
	"github.com/panelboard/panelboard/internal/app/system/auth"
	"github.com/panelboard/panelboard/internal/app/system/timeouts"
)

type Handler struct {
	Sessions   *sessions.Store
	Activity   *activity.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sessStore *sessions.Store, activityStore *activity.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions:   sessStore,
		Activity:   activityStore,
		SessionMgr: sessionMgr,
		Log:        logger,
	}
}

// ServeLogout handles POST /logout. The session cookie is cleared even when
// the bookkeeping writes fail.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, _ := auth.CurrentUser(r)

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	if user != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		if uid, err := primitive.ObjectIDFromHex(user.ID); err == nil {
			if err := h.Sessions.Close(ctx, uid, sessions.EndLogout); err != nil {
				h.Log.Warn("logout: close session record", zap.Error(err), zap.String("user_id", user.ID))
			}
			if err := h.Activity.Record(ctx, &uid, activity.ActionLogout); err != nil {
				h.Log.Warn("logout: record activity", zap.Error(err), zap.String("user_id", user.ID))
			}
		}
		h.Log.Info("user signed out", zap.String("user_id", user.ID))
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"isAuthenticated": false})
}
