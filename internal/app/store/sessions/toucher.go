// internal/app/store/sessions/toucher.go
package sessions

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/panelboard/panelboard/internal/app/system/timeouts"
)

// Toucher implements auth.SessionToucher over the sessions store. The session
// middleware calls it on each authenticated request so the tracked session's
// last_active_at stays current for the active-session counter and the
// idle-cleanup job.
type Toucher struct {
	s *Store
}

// NewToucher creates a SessionToucher that updates the given database.
func NewToucher(db *mongo.Database) *Toucher {
	return &Toucher{s: New(db)}
}

// TouchSession advances the user's open session's activity timestamp.
// Best-effort: failures are swallowed so a tracking hiccup never fails the
// request.
func (t *Toucher) TouchSession(ctx context.Context, userID string) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	_ = t.s.Touch(ctx, oid)
}
