package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client. Read paths fail safe by swallowing connectivity
// errors: a Redis outage degrades to cache misses, so sessions resolve as
// absent (the request is treated as unauthenticated) and pending flashes are
// dropped. Writes that must not be lost go through Write/RPush, which
// surface errors.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return nil
	}
	return nil
}

// Write stores value with TTL, surfacing redis errors. Used where a lost
// write must fail the request instead of degrading silently.
func (c *Client) Write(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return errors.New("cache unavailable")
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// RPush appends value to the list at key and re-arms its TTL, surfacing
// redis errors. The append is atomic on the server, so concurrent pushes
// never lose entries.
func (c *Client) RPush(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return errors.New("cache unavailable")
	}
	if err := c.client.RPush(ctx, key, value).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, ttl).Err()
}

// List returns all entries of the list at key, or nil if missing or redis
// unavailable.
func (c *Client) List(ctx context.Context, key string) ([][]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		// fail safe: behave like an empty list
		return nil, nil
	}
	values := make([][]byte, 0, len(res))
	for _, item := range res {
		values = append(values, []byte(item))
	}
	return values, nil
}

// Expire re-arms the TTL on an existing key, ignoring redis errors.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		return nil
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return nil
	}
	return nil
}
