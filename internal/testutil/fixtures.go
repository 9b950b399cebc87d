// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/panelboard/panelboard/internal/app/system/normalize"
	"github.com/panelboard/panelboard/internal/domain/models"
)

// TestMongoEnv names the environment variable holding the test MongoDB URI.
// Tests that need a database skip when it is unset.
const TestMongoEnv = "PANELBOARD_TEST_MONGO_URI"

// SetupTestDB connects to the test MongoDB instance and returns a database
// scoped to this test. The database is dropped on cleanup so runs do not
// leak data into each other.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(TestMongoEnv)
	if uri == "" {
		t.Skipf("%s not set; skipping database test", TestMongoEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	db := client.Database(fmt.Sprintf("panelboard_test_%d", time.Now().UnixNano()))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database: %v", err)
		}
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a deadline suitable for one test's
// database calls.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Fixtures provides helpers for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given credentials and returns it.
// The password is hashed with a low bcrypt cost to keep tests fast.
func (f *Fixtures) CreateUser(ctx context.Context, username, email, role, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash test password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   normalize.UsernameCI(username),
		Email:        normalize.Email(email),
		AuthMethod:   models.AuthMethodInternal,
		Role:         role,
		Status:       models.StatusActive,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}

// RecordActivity inserts an activity event with the given action.
func (f *Fixtures) RecordActivity(ctx context.Context, userID *primitive.ObjectID, action string, at time.Time) {
	f.t.Helper()

	doc := map[string]any{
		"action":    action,
		"timestamp": at,
	}
	if userID != nil {
		doc["user_id"] = *userID
	}
	if _, err := f.db.Collection("activity_events").InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("record test activity: %v", err)
	}
}
