// internal/app/bootstrap/startup_test.go
package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/panelboard/panelboard/internal/domain/models"
	"github.com/panelboard/panelboard/internal/testutil"
)

func TestEnsureAdmin_CreatesWhenEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	deps := DBDeps{MongoDatabase: db}
	cfg := AppConfig{
		AdminUsername: "admin",
		AdminPassword: "bootstrap-pw",
		AdminEmail:    "admin@example.com",
	}

	if err := ensureAdmin(ctx, deps, cfg, zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"username_ci": "admin"}).Decode(&user); err != nil {
		t.Fatalf("failed to find created admin: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleAdmin)
	}
	if user.Status != models.StatusActive {
		t.Errorf("status: got %q, want %q", user.Status, models.StatusActive)
	}
	if user.PasswordHash == "" || user.PasswordHash == "bootstrap-pw" {
		t.Error("expected a hashed password")
	}
}

func TestEnsureAdmin_SkipsWhenUsersExist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	fx.CreateUser(ctx, "existing", "existing@example.com", "user", "pw")

	deps := DBDeps{MongoDatabase: db}
	cfg := AppConfig{AdminUsername: "admin", AdminPassword: "bootstrap-pw"}

	if err := ensureAdmin(ctx, deps, cfg, zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("user count: got %d, want 1 (no admin created)", count)
	}
}

func TestEnsureAdmin_SkipsWithoutPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	deps := DBDeps{MongoDatabase: db}
	cfg := AppConfig{AdminUsername: "admin"}

	if err := ensureAdmin(ctx, deps, cfg, zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Errorf("user count: got %d, want 0", count)
	}
}
