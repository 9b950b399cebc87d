// internal/app/store/sessions/store.go
package sessions

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Session end reasons.
const (
	EndLogout   = "logout"
	EndInactive = "inactive"
)

// Session tracks a user's login session for the active_sessions statistic and
// activity monitoring. Cookie sessions handle authentication; these records
// exist purely for observability.
type Session struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id"`

	LoginAt      time.Time  `bson:"login_at"`
	LogoutAt     *time.Time `bson:"logout_at,omitempty"`
	LastActiveAt time.Time  `bson:"last_active_at"`

	// How did the session end? "logout", "inactive", or "" while open.
	EndReason string `bson:"end_reason,omitempty"`

	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	// Computed on session close.
	DurationSecs int64 `bson:"duration_secs,omitempty"`
}

// Store manages tracked login sessions.
type Store struct {
	c *mongo.Collection
}

// New creates a new sessions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sessions")}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Active sessions query (for the dashboard counter)
		{
			Keys:    bson.D{{Key: "logout_at", Value: 1}, {Key: "last_active_at", Value: -1}},
			Options: options.Index().SetName("idx_sessions_active"),
		},
		// User session history
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "login_at", Value: -1}},
			Options: options.Index().SetName("idx_sessions_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create starts a new session for a user.
// It first closes any existing open sessions for the user so each user has at
// most one open session at a time.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, ip, userAgent string) (Session, error) {
	now := time.Now().UTC()

	_, _ = s.c.UpdateMany(ctx,
		bson.M{"user_id": userID, "logout_at": nil},
		bson.M{"$set": bson.M{"logout_at": now, "end_reason": EndInactive}},
	)

	sess := Session{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		LoginAt:      now,
		LastActiveAt: now,
		IP:           ip,
		UserAgent:    userAgent,
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Touch updates the last-active timestamp of a user's open session.
func (s *Store) Touch(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"user_id": userID, "logout_at": nil},
		bson.M{"$set": bson.M{"last_active_at": time.Now().UTC()}},
	)
	return err
}

// Close ends a user's open sessions with the given reason and records the
// session duration.
func (s *Store) Close(ctx context.Context, userID primitive.ObjectID, reason string) error {
	now := time.Now().UTC()

	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "logout_at": nil})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var sess Session
		if err := cur.Decode(&sess); err != nil {
			continue
		}
		_, err := s.c.UpdateByID(ctx, sess.ID, bson.M{"$set": bson.M{
			"logout_at":     now,
			"end_reason":    reason,
			"duration_secs": int64(now.Sub(sess.LoginAt).Seconds()),
		}})
		if err != nil {
			return err
		}
	}
	return cur.Err()
}

// CountActive returns the number of open sessions active within the threshold.
func (s *Store) CountActive(ctx context.Context, threshold time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-threshold)
	return s.c.CountDocuments(ctx, bson.M{
		"logout_at":      nil,
		"last_active_at": bson.M{"$gte": cutoff},
	})
}

// CloseInactive closes open sessions whose last activity is older than the
// threshold and returns how many were closed. Sessions are marked rather than
// deleted so history survives for the activity feed.
func (s *Store) CloseInactive(ctx context.Context, threshold time.Duration) (int64, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-threshold)

	res, err := s.c.UpdateMany(ctx,
		bson.M{"logout_at": nil, "last_active_at": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"logout_at": now, "end_reason": EndInactive}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
