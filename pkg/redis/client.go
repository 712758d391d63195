// Package redis wraps go-redis with the key namespace and the small
// set of primitives the service layer needs: replay caches, rate
// limit windows, session records, and cron locks.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rakibulhaque/trendibay-backend/pkg/config"
)

const namespace = "tb"

type Client struct {
	rdb *goredis.Client
}

func NewClient(cfg config.Redis) *Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Client{rdb: rdb}
}

func NewClientFromRedis(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func Key(parts ...string) string {
	key := namespace
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func IdempotencyKey(scope, key string) string {
	return Key("idem", scope, key)
}

func SessionKey(userID, jti string) string {
	return Key("session", userID, jti)
}

func RateLimitKey(scope, subject string) string {
	return Key("rate", scope, subject)
}

func CronLockKey(job string) string {
	return Key("cron", "lock", job)
}

func CartCacheKey(userID string) string {
	return Key("cart", userID)
}

func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// SetNX stores value only when key is absent. Returns true when this
// caller won the slot.
func (c *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: setnx %s: %w", key, err)
	}
	return ok, nil
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis: del: %w", err)
	}
	return nil
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis: exists %s: %w", key, err)
	}
	return n > 0, nil
}

// IncrWithTTL increments key and stamps the TTL on first use.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis: incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// FixedWindowAllow implements a fixed-window rate limit. The first
// call in a window sets the expiry; callers over the limit are denied
// until the window lapses.
func (c *Client) FixedWindowAllow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, err
	}
	return count <= int64(limit), nil
}

// ReleaseLock deletes key only when it still holds owner. Uses a Lua
// compare-and-delete so a lapsed owner cannot release a successor's
// lock.
func (c *Client) ReleaseLock(ctx context.Context, key, owner string) (bool, error) {
	const script = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`
	res, err := c.rdb.Eval(ctx, script, []string{key}, owner).Int64()
	if err != nil {
		return false, fmt.Errorf("redis: release lock %s: %w", key, err)
	}
	return res == 1, nil
}
