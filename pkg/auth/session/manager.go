// Package session tracks live token sessions in Redis so logout and
// compromise response can revoke tokens before they expire. Both
// halves of a pair get a record: the refresh session remembers its
// access JTI, so revoking through the refresh token kills the
// short-lived access token with it.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

type Manager struct {
	cache *redis.Client
}

func NewManager(cache *redis.Client) (*Manager, error) {
	if cache == nil {
		return nil, fmt.Errorf("session: redis client is required")
	}
	return &Manager{cache: cache}, nil
}

// CreatePair records live sessions for an access/refresh token pair.
// The refresh record stores the access JTI as its value so RevokePair
// can find it later.
func (m *Manager) CreatePair(ctx context.Context, userID, accessJTI string, accessTTL time.Duration, refreshJTI string, refreshTTL time.Duration) error {
	if err := m.cache.Set(ctx, redis.SessionKey(userID, accessJTI), "1", accessTTL); err != nil {
		return err
	}
	return m.cache.Set(ctx, redis.SessionKey(userID, refreshJTI), accessJTI, refreshTTL)
}

func (m *Manager) Has(ctx context.Context, userID, jti string) (bool, error) {
	return m.cache.Exists(ctx, redis.SessionKey(userID, jti))
}

// RevokePair revokes a refresh session and the access session linked
// to it, so an outstanding access token dies with the logout instead
// of riding out its TTL.
func (m *Manager) RevokePair(ctx context.Context, userID, refreshJTI string) error {
	accessJTI, found, err := m.cache.Get(ctx, redis.SessionKey(userID, refreshJTI))
	if err != nil {
		return err
	}
	if found && accessJTI != "" {
		if err := m.cache.Del(ctx, redis.SessionKey(userID, accessJTI)); err != nil {
			return err
		}
	}
	return m.cache.Del(ctx, redis.SessionKey(userID, refreshJTI))
}
