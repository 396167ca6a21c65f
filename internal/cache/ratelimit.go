package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// rateLimitUserPrefix is the Redis key prefix for per-user API rate limits.
	rateLimitUserPrefix = "ratelimit:user:"
	// rateLimitIPPrefix is the Redis key prefix for per-IP auth rate limits.
	rateLimitIPPrefix = "ratelimit:ip:"
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int64
	ResetAt   time.Time
}

// CheckUserRateLimit counts a request against the per-user fixed window.
// limit is the number of requests allowed per minute.
func (c *Cache) CheckUserRateLimit(ctx context.Context, userID string, limit int) (*RateLimitResult, error) {
	return c.checkWindow(ctx, rateLimitUserPrefix+userID, limit, time.Minute)
}

// CheckIPRateLimit counts a request against the per-IP fixed window.
// The IP is hashed so raw addresses are never stored in Redis.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, limit int) (*RateLimitResult, error) {
	sum := sha256.Sum256([]byte(ip))
	key := rateLimitIPPrefix + hex.EncodeToString(sum[:16])
	return c.checkWindow(ctx, key, limit, time.Minute)
}

// checkWindow implements a fixed-window counter: INCR the key and set
// its expiry when the window opens. The count is authoritative for the
// window; anything over the limit is rejected until the key expires.
func (c *Cache) checkWindow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	if limit <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: 0, ResetAt: time.Now().Add(window)}, nil
	}

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit incr: %w", err)
	}

	// First hit in the window opens it.
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return nil, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}

	remaining := int64(limit) - count
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{
		Allowed:   count <= int64(limit),
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
