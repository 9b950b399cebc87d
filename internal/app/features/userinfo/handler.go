// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"

	"github.com/panelboard/panelboard/internal/app/system/auth"
)

// Handler serves the current user's identity for the frontend shell.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ServeUserInfo returns JSON describing the current session's user.
//
// Response format:
//
//	{ "isAuthenticated": bool, "id": "...", "username": "...", "email": "...", "role": "..." }
//
// The endpoint always answers 200; an anonymous request gets
// isAuthenticated=false with empty identity fields, so the frontend can call
// it unconditionally on boot.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isAuthenticated": false,
			"id":              "",
			"username":        "",
			"email":           "",
			"role":            "",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"id":              user.ID,
		"username":        user.Username,
		"email":           user.Email,
		"role":            user.Role,
	})
}
