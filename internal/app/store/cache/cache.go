// Package cache is a thin Redis layer for short-lived JSON values, used to
// serve the dashboard snapshot without recomputing counts on every request.
//
// All read paths degrade gracefully: a Redis error or cache miss returns
// (false, nil-error-or-logged) and the caller recomputes. The cache is
// optional; a nil *Client disables it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a Redis connection for snapshot caching.
type Client struct {
	cli *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		if closeErr := cli.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{cli: cli}, nil
}

// Ping checks connectivity. A nil client reports an error so health checks
// surface the unconfigured state.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.cli.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.cli.Close()
}

// GetJSON loads the value stored under key into dest.
// Returns (false, nil) on a cache miss.
func (c *Client) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.cli.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value under key with the given TTL, JSON-encoded wholesale.
func (c *Client) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.cli.Set(ctx, key, raw, ttl).Err()
}

// Delete removes a key. Missing keys are not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.cli.Del(ctx, key).Err()
}
