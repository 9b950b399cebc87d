// internal/app/store/tasks/store.go
package taskstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Task statuses.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Task is a queued batch task. The dashboard's pending_tasks statistic counts
// tasks still in the pending state.
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Kind      string             `bson:"kind"`
	Status    string             `bson:"status"`
	Error     string             `bson:"error,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Store manages batch task records.
type Store struct {
	c *mongo.Collection
}

// New creates a new task Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: -1}},
		Options: options.Index().SetName("idx_tasks_status"),
	})
	return err
}

// Create enqueues a new pending task of the given kind.
func (s *Store) Create(ctx context.Context, kind string) (Task, error) {
	now := time.Now().UTC()
	t := Task{
		ID:        primitive.NewObjectID(),
		Kind:      kind,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// CountPending returns the number of tasks still waiting to run.
func (s *Store) CountPending(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": StatusPending})
}

// MarkRunning transitions a pending task to running.
func (s *Store) MarkRunning(ctx context.Context, id primitive.ObjectID) error {
	return s.setStatus(ctx, id, StatusRunning, "")
}

// MarkDone transitions a task to done.
func (s *Store) MarkDone(ctx context.Context, id primitive.ObjectID) error {
	return s.setStatus(ctx, id, StatusDone, "")
}

// MarkFailed transitions a task to failed with the given error message.
func (s *Store) MarkFailed(ctx context.Context, id primitive.ObjectID, msg string) error {
	return s.setStatus(ctx, id, StatusFailed, msg)
}

func (s *Store) setStatus(ctx context.Context, id primitive.ObjectID, status, msg string) error {
	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if msg != "" {
		set["error"] = msg
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// SweepStale re-queues tasks stuck in running longer than the threshold,
// typically after a crash mid-run. Returns how many were re-queued.
func (s *Store) SweepStale(ctx context.Context, threshold time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-threshold)
	res, err := s.c.UpdateMany(ctx,
		bson.M{"status": StatusRunning, "updated_at": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": StatusPending, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
