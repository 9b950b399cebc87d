// internal/app/store/activity/store_test.go
package activity_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/panelboard/panelboard/internal/app/store/activity"
	"github.com/panelboard/panelboard/internal/testutil"
)

func TestStore_RecordAndRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	userID := primitive.NewObjectID()
	if err := store.Record(ctx, &userID, activity.ActionLogin); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	// An older event inserted directly with a backdated timestamp.
	fx.RecordActivity(ctx, nil, "System Start", time.Now().UTC().Add(-time.Hour))

	events, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Action != activity.ActionLogin {
		t.Errorf("first event: got %q, want %q", events[0].Action, activity.ActionLogin)
	}
	if events[1].Action != "System Start" {
		t.Errorf("second event: got %q, want %q", events[1].Action, "System Start")
	}
}

func TestStore_RecordStripsMarkup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx := testutil.TestContext(t)

	if err := store.Record(ctx, nil, `<script>alert(1)</script>Login`); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	events, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 1 || events[0].Action != "Login" {
		t.Errorf("action: got %+v, want stripped %q", events, "Login")
	}
}

func TestStore_Recent_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx := testutil.TestContext(t)

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, nil, activity.ActionLogin); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	events, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("events: got %d, want 3", len(events))
	}
}

func TestStore_GetByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx := testutil.TestContext(t)

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	if err := store.Record(ctx, &alice, activity.ActionLogin); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Record(ctx, &bob, activity.ActionLogin); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	events, err := store.GetByUser(ctx, alice, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if events[0].UserID == nil || *events[0].UserID != alice {
		t.Errorf("user_id: got %v, want %s", events[0].UserID, alice.Hex())
	}
}
