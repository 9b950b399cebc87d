// internal/app/store/users/userstore_test.go
package userstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	userstore "github.com/panelboard/panelboard/internal/app/store/users"
	"github.com/panelboard/panelboard/internal/domain/models"
	"github.com/panelboard/panelboard/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.User{
		Username: "  Alice  ",
		Email:    "ALICE@Example.com ",
		Role:     "admin",
	}, "s3cret-pw")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Username != "Alice" {
		t.Errorf("username: got %q, want trimmed %q", created.Username, "Alice")
	}
	if created.UsernameCI != "alice" {
		t.Errorf("username_ci: got %q, want %q", created.UsernameCI, "alice")
	}
	if created.Email != "alice@example.com" {
		t.Errorf("email: got %q, want %q", created.Email, "alice@example.com")
	}
	if created.Status != models.StatusActive {
		t.Errorf("status: got %q, want default %q", created.Status, models.StatusActive)
	}
	if created.PasswordHash == "" || created.PasswordHash == "s3cret-pw" {
		t.Error("expected a bcrypt hash, not the plaintext")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	if _, err := store.Create(ctx, models.User{Username: "alice", Role: "user"}, "pw-one"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same username with different case hits the unique index.
	_, err := store.Create(ctx, models.User{Username: "ALICE", Role: "user"}, "pw-two")
	if !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Errorf("duplicate Create: got %v, want ErrDuplicateUsername", err)
	}
}

func TestStore_Create_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.User{Username: "bob", Role: "wizard"}, "pw"); err == nil {
		t.Error("expected Create to reject an unknown role")
	}
}

func TestStore_GetByUsername_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.User{Username: "Alice", Role: "user"}, "pw")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByUsername(ctx, "aLiCe")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByUsername returned wrong user: %s", got.ID.Hex())
	}
}

func TestStore_VerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.User{Username: "alice", Role: "user"}, "s3cret-pw"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u, err := store.VerifyPassword(ctx, "alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("VerifyPassword with correct password failed: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("username: got %q", u.Username)
	}

	// Wrong password and unknown user return the same error.
	if _, err := store.VerifyPassword(ctx, "alice", "wrong"); !errors.Is(err, userstore.ErrBadCredentials) {
		t.Errorf("wrong password: got %v, want ErrBadCredentials", err)
	}
	if _, err := store.VerifyPassword(ctx, "nobody", "whatever"); !errors.Is(err, userstore.ErrBadCredentials) {
		t.Errorf("unknown user: got %v, want ErrBadCredentials", err)
	}
}

func TestStore_VerifyPassword_DisabledAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.User{
		Username: "carol",
		Role:     "user",
		Status:   models.StatusDisabled,
	}, "s3cret-pw"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.VerifyPassword(ctx, "carol", "s3cret-pw"); !errors.Is(err, userstore.ErrBadCredentials) {
		t.Errorf("disabled account: got %v, want ErrBadCredentials", err)
	}
}

func TestFetcher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.User{Username: "alice", Email: "alice@example.com", Role: "admin"}, "pw")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	f := userstore.NewFetcher(db)

	su := f.FetchUser(ctx, created.ID.Hex())
	if su == nil {
		t.Fatal("FetchUser returned nil for an active user")
	}
	if su.Username != "alice" || su.Role != "admin" {
		t.Errorf("session user: got %+v", su)
	}

	if su := f.FetchUser(ctx, primitive.NewObjectID().Hex()); su != nil {
		t.Errorf("FetchUser for unknown ID: got %+v, want nil", su)
	}
}
