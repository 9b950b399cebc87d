// internal/app/store/tasks/store_test.go
package taskstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	taskstore "github.com/panelboard/panelboard/internal/app/store/tasks"
	"github.com/panelboard/panelboard/internal/testutil"
)

func TestStore_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx := testutil.TestContext(t)

	task, err := store.Create(ctx, "report-export")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Status != taskstore.StatusPending {
		t.Errorf("status: got %q, want %q", task.Status, taskstore.StatusPending)
	}

	pending, err := store.CountPending(ctx)
	if err != nil {
		t.Fatalf("CountPending failed: %v", err)
	}
	if pending != 1 {
		t.Errorf("pending count: got %d, want 1", pending)
	}

	if err := store.MarkRunning(ctx, task.ID); err != nil {
		t.Fatalf("MarkRunning failed: %v", err)
	}
	if err := store.MarkDone(ctx, task.ID); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	pending, err = store.CountPending(ctx)
	if err != nil {
		t.Fatalf("CountPending failed: %v", err)
	}
	if pending != 0 {
		t.Errorf("pending count after done: got %d, want 0", pending)
	}
}

func TestStore_MarkFailed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx := testutil.TestContext(t)

	task, err := store.Create(ctx, "mail-send")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.MarkFailed(ctx, task.ID, "smtp timeout"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	var got taskstore.Task
	if err := db.Collection("tasks").FindOne(ctx, bson.M{"_id": task.ID}).Decode(&got); err != nil {
		t.Fatalf("load task: %v", err)
	}
	if got.Status != taskstore.StatusFailed {
		t.Errorf("status: got %q, want %q", got.Status, taskstore.StatusFailed)
	}
	if got.Error != "smtp timeout" {
		t.Errorf("error: got %q", got.Error)
	}
}

func TestStore_SweepStale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx := testutil.TestContext(t)

	task, err := store.Create(ctx, "import")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.MarkRunning(ctx, task.ID); err != nil {
		t.Fatalf("MarkRunning failed: %v", err)
	}

	// Backdate the running task beyond the threshold.
	stale := time.Now().UTC().Add(-time.Hour)
	if _, err := db.Collection("tasks").UpdateByID(ctx, task.ID,
		bson.M{"$set": bson.M{"updated_at": stale}}); err != nil {
		t.Fatalf("backdate task: %v", err)
	}

	swept, err := store.SweepStale(ctx, 10*time.Minute)
	if err != nil {
		t.Fatalf("SweepStale failed: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept: got %d, want 1", swept)
	}

	pending, err := store.CountPending(ctx)
	if err != nil {
		t.Fatalf("CountPending failed: %v", err)
	}
	if pending != 1 {
		t.Errorf("pending after sweep: got %d, want 1", pending)
	}
}
