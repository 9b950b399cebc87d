// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"github.com/panelboard/panelboard/internal/app/system/htmlsanitize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Well-known actions recorded by the app itself. Arbitrary action strings are
// allowed; they are stripped of markup before storage.
const (
	ActionLogin         = "Login"
	ActionLogout        = "Logout"
	ActionUpdateProfile = "Update Profile"
)

// Event is one entry in the recent-activity feed.
type Event struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	UserID    *primitive.ObjectID `bson:"user_id,omitempty"`
	Action    string              `bson:"action"`
	Timestamp time.Time           `bson:"timestamp"`
}

// Store manages activity events.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_events")}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_ts"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Record stores a new activity event. The action string is sanitized to plain
// text before insertion.
func (s *Store) Record(ctx context.Context, userID *primitive.ObjectID, action string) error {
	event := Event{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Action:    htmlsanitize.Strip(action),
		Timestamp: time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Recent retrieves the latest events, newest first.
func (s *Store) Recent(ctx context.Context, limit int64) ([]Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByUser retrieves recent events for a user.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
