package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
)

// IntentRepository persists cart-clear intents, the durable record of
// committed checkouts whose cart lines still need removing.
type IntentRepository struct {
	db *gorm.DB
}

func NewIntentRepository(db *gorm.DB) *IntentRepository {
	return &IntentRepository{db: db}
}

func (r *IntentRepository) WithTx(tx *gorm.DB) *IntentRepository {
	return &IntentRepository{db: tx}
}

func (r *IntentRepository) Create(ctx context.Context, intent *models.CartClearIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

// Exists reports whether a clear intent is still outstanding, meaning
// the order's cart lines have not been removed yet.
func (r *IntentRepository) Exists(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartClearIntent{}).
		Where("order_id = ?", orderID).
		Count(&count).
		Error
	return count > 0, err
}

func (r *IntentRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.CartClearIntent{}, "order_id = ?", orderID).
		Error
}

// ListStale returns intents older than cutoff, oldest first. These are
// the checkouts whose inline cart clear never landed.
func (r *IntentRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]models.CartClearIntent, error) {
	var intents []models.CartClearIntent
	err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&intents).
		Error
	return intents, err
}

func (r *IntentRepository) IncrementAttempts(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CartClearIntent{}).
		Where("order_id = ?", orderID).
		Update("attempts", gorm.Expr("attempts + 1")).
		Error
}
