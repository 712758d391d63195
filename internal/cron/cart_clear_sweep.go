package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	"github.com/rakibulhaque/trendibay-backend/internal/checkout"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

const sweepBatchSize = 100

// CartClearSweep drains cart-clear intents whose inline clear failed.
// Each intent names the exact cart lines its checkout snapshotted, so
// the sweep removes only those and leaves newer cart activity alone.
type CartClearSweep struct {
	cartRepo   *cart.Repository
	intentRepo *checkout.IntentRepository
	cache      *redis.Client
	minAge     time.Duration
}

func NewCartClearSweep(cartRepo *cart.Repository, intentRepo *checkout.IntentRepository, cache *redis.Client, minAge time.Duration) (*CartClearSweep, error) {
	if cartRepo == nil {
		return nil, fmt.Errorf("cart clear sweep: cart repository is required")
	}
	if intentRepo == nil {
		return nil, fmt.Errorf("cart clear sweep: intent repository is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cart clear sweep: redis client is required")
	}
	if minAge <= 0 {
		minAge = 30 * time.Second
	}
	return &CartClearSweep{
		cartRepo:   cartRepo,
		intentRepo: intentRepo,
		cache:      cache,
		minAge:     minAge,
	}, nil
}

func (j *CartClearSweep) Name() string { return "cart_clear_sweep" }

func (j *CartClearSweep) Run(ctx context.Context) error {
	logg := logger.FromContext(ctx)

	// Skip intents younger than minAge; their checkout may still be
	// finishing its own clear.
	cutoff := time.Now().Add(-j.minAge)
	intents, err := j.intentRepo.ListStale(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return fmt.Errorf("list stale intents: %w", err)
	}
	if len(intents) == 0 {
		return nil
	}

	var errs error
	cleared := 0
	for i := range intents {
		intent := &intents[i]

		if _, err := j.cartRepo.DeleteByIDs(ctx, intent.UserID, intent.CartItemIDs); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("clear cart for order %s: %w", intent.OrderID, err))
			if incErr := j.intentRepo.IncrementAttempts(ctx, intent.OrderID); incErr != nil {
				errs = multierr.Append(errs, fmt.Errorf("bump attempts for order %s: %w", intent.OrderID, incErr))
			}
			continue
		}
		if err := j.intentRepo.Delete(ctx, intent.OrderID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("retire intent for order %s: %w", intent.OrderID, err))
			continue
		}
		if err := j.cache.Del(ctx, redis.CartCacheKey(intent.UserID.String())); err != nil {
			logg.Warn("invalidate cart cache", err)
		}
		cleared++
	}

	logg.WithFields(map[string]any{
		"found":   len(intents),
		"cleared": cleared,
	}).Info("cart clear sweep finished")
	return errs
}
