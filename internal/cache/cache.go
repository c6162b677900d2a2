package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Lookup keys for the autocomplete listings.
const (
	CompaniesKey = "lookup:companies"
	DriversKey   = "lookup:drivers"
)

var ErrCacheMiss = errors.New("cache miss")

// Client is a thin JSON cache over Redis for the company/driver lookup
// listings the frontends fetch on every keystroke. A nil *Client is valid
// and behaves as an always-missing cache, so the service runs without Redis.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, ttl time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

func (c *Client) GetJSON(key string, dest interface{}) error {
	if c == nil {
		return ErrCacheMiss
	}
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) SetJSON(key string, value interface{}) error {
	if c == nil {
		return nil
	}
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	ctx := context.Background()
	return c.rdb.Set(ctx, key, jsonData, c.ttl).Err()
}

func (c *Client) Invalidate(keys ...string) error {
	if c == nil {
		return nil
	}
	ctx := context.Background()
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
