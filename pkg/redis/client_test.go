package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewClientFromRedis(rdb), mr
}

func TestKeyNamespacing(t *testing.T) {
	assert.Equal(t, "tb:idem:checkout:abc", IdempotencyKey("checkout", "abc"))
	assert.Equal(t, "tb:session:u1:j1", SessionKey("u1", "j1"))
	assert.Equal(t, "tb:rate:login:1.2.3.4", RateLimitKey("login", "1.2.3.4"))
	assert.Equal(t, "tb:cart:u1", CartCacheKey("u1"))
	assert.Equal(t, "tb:cron:lock:worker", CronLockKey("worker"))
}

func TestGetSetDel(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	_, found, err := client.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))
	val, found, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	require.NoError(t, client.Del(ctx, "k"))
	_, found, err = client.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetNXClaimsOnce(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	won, err := client.SetNX(ctx, "slot", "first", time.Minute)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = client.SetNX(ctx, "slot", "second", time.Minute)
	require.NoError(t, err)
	assert.False(t, won)

	val, found, err := client.Get(ctx, "slot")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", val)
}

func TestFixedWindowAllow(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := client.FixedWindowAllow(ctx, "rate", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := client.FixedWindowAllow(ctx, "rate", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(time.Minute + time.Second)
	allowed, err = client.FixedWindowAllow(ctx, "rate", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestReleaseLockChecksOwner(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	won, err := client.SetNX(ctx, "lock", "owner-a", time.Minute)
	require.NoError(t, err)
	require.True(t, won)

	released, err := client.ReleaseLock(ctx, "lock", "owner-b")
	require.NoError(t, err)
	assert.False(t, released)

	released, err = client.ReleaseLock(ctx, "lock", "owner-a")
	require.NoError(t, err)
	assert.True(t, released)
}
