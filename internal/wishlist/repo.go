package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/pagination"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert adds a wishlist entry and ignores duplicates, so a racing
// double-toggle cannot error on the unique pair.
func (r *Repository) Insert(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO wishlist_items (id, user_id, product_id, product_name, unit_price_cents, image_url, category)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, product_id) DO NOTHING`,
		item.ID, item.UserID, item.ProductID,
		item.ProductName, item.UnitPriceCents, item.ImageURL, item.Category,
	).Error
}

// Remove deletes the user's entry for a product, reporting how many
// rows went away.
func (r *Repository) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	return res.RowsAffected, res.Error
}

// RemoveByID deletes one entry the user owns. Zero rows affected means
// the entry is missing or owned by someone else.
func (r *Repository) RemoveByID(ctx context.Context, userID, entryID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.WishlistItem{})
	return res.RowsAffected, res.Error
}

// ListByUser returns a keyset page of the user's wishlist, newest
// first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.WishlistItem, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var items []models.WishlistItem
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).
		Error
	return items, err
}
