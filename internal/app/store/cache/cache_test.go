// internal/app/store/cache/cache_test.go
package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/panelboard/panelboard/internal/app/store/cache"
)

// testRedisEnv names the environment variable holding the test Redis URL.
const testRedisEnv = "PANELBOARD_TEST_REDIS_URL"

func setupClient(t *testing.T) *cache.Client {
	t.Helper()
	url := os.Getenv(testRedisEnv)
	if url == "" {
		t.Skipf("%s not set; skipping redis test", testRedisEnv)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := cache.New(ctx, url)
	if err != nil {
		t.Fatalf("connect to test redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_SetGetDelete(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	key := "test:cache:" + t.Name()
	if err := c.SetJSON(ctx, key, payload{Name: "alice", Count: 3}, time.Minute); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var got payload
	hit, err := c.GetJSON(ctx, key, &got)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if got.Name != "alice" || got.Count != 3 {
		t.Errorf("payload: got %+v", got)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	hit, err = c.GetJSON(ctx, key, &got)
	if err != nil {
		t.Fatalf("GetJSON after delete failed: %v", err)
	}
	if hit {
		t.Error("expected a miss after delete")
	}
}

func TestClient_MissReturnsFalse(t *testing.T) {
	c := setupClient(t)

	var dest map[string]any
	hit, err := c.GetJSON(context.Background(), "test:cache:never-set", &dest)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if hit {
		t.Error("expected a miss for an unknown key")
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *cache.Client
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", 1, time.Minute); err != nil {
		t.Errorf("nil SetJSON: got %v", err)
	}
	hit, err := c.GetJSON(ctx, "k", new(int))
	if err != nil || hit {
		t.Errorf("nil GetJSON: got hit=%v err=%v", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("nil Delete: got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("nil Close: got %v", err)
	}
	if err := c.Ping(ctx); err == nil {
		t.Error("nil Ping should report an error")
	}
}
