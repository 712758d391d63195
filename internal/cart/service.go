package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

// Service exposes cart reads and mutations for the storefront.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (CartDTO, error)
	GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, input UpdateQuantityInput) (CartDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (CartDTO, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	InvalidateCache(ctx context.Context, userID uuid.UUID)
}

type service struct {
	repo        *Repository
	catalogRepo *catalog.Repository
	cache       *redis.Client
	cacheTTL    time.Duration
}

func NewService(repo *Repository, catalogRepo *catalog.Repository, cache *redis.Client, cacheTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart: repository is required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("cart: catalog repository is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cart: redis client is required")
	}
	return &service{repo: repo, catalogRepo: catalogRepo, cache: cache, cacheTTL: cacheTTL}, nil
}

// AddItem snapshots the product into a cart line. Re-adding the same
// product merges additively into the existing line.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (CartDTO, error) {
	product, err := s.catalogRepo.GetActive(ctx, input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return CartDTO{}, errors.New(errors.CodeNotFound, "product not found")
		}
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "load product")
	}

	// Best-effort stock gate. Stock is not reserved; checkout is the
	// authority on availability.
	if product.StockQuantity < input.Quantity {
		return CartDTO{}, errors.New(errors.CodeValidation, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"available": product.StockQuantity})
	}

	item := &models.CartItem{
		ID:             uuid.New(),
		UserID:         userID,
		ProductID:      product.ID,
		Quantity:       input.Quantity,
		ProductName:    product.Name,
		UnitPriceCents: product.UnitPriceCents,
		ImageURL:       product.ImageURL,
		Category:       product.Category,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "add cart item")
	}

	s.InvalidateCache(ctx, userID)
	return s.loadCart(ctx, userID)
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	key := redis.CartCacheKey(userID.String())
	if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var dto CartDTO
		if jsonErr := json.Unmarshal([]byte(raw), &dto); jsonErr == nil {
			return dto, nil
		}
	}

	dto, err := s.loadCart(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}

	if raw, err := json.Marshal(dto); err == nil {
		if setErr := s.cache.Set(ctx, key, string(raw), s.cacheTTL); setErr != nil {
			logger.FromContext(ctx).Warn("cache cart summary", setErr)
		}
	}
	return dto, nil
}

// UpdateQuantity sets a line's quantity. A line owned by another user
// is reported as missing, not forbidden.
func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, input UpdateQuantityInput) (CartDTO, error) {
	affected, err := s.repo.UpdateQuantity(ctx, userID, itemID, input.Quantity)
	if err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "update cart item")
	}
	if affected == 0 {
		return CartDTO{}, errors.New(errors.CodeNotFound, "cart item not found")
	}

	s.InvalidateCache(ctx, userID)
	return s.loadCart(ctx, userID)
}

// RemoveItem deletes a line. Removing a line that is already gone is a
// success, so a retried delete never errors.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (CartDTO, error) {
	if _, err := s.repo.Remove(ctx, userID, itemID); err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "remove cart item")
	}

	s.InvalidateCache(ctx, userID)
	return s.loadCart(ctx, userID)
}

// ClearCart empties the cart. An already-empty cart clears to itself.
func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	if _, err := s.repo.Clear(ctx, userID); err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "clear cart")
	}

	s.InvalidateCache(ctx, userID)
	return BuildCartDTO(nil), nil
}

// InvalidateCache drops the cached summary. Failures only cost
// freshness, so they are logged and swallowed.
func (s *service) InvalidateCache(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Del(ctx, redis.CartCacheKey(userID.String())); err != nil {
		logger.FromContext(ctx).Warn("invalidate cart cache", err)
	}
}

func (s *service) loadCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "list cart items")
	}
	return BuildCartDTO(items), nil
}
