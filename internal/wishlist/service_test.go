package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	pkgerrors "github.com/rakibulhaque/trendibay-backend/pkg/errors"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  unit_price_cents INTEGER NOT NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  deleted_at DATETIME,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`
	wishlistItems := `
CREATE TABLE IF NOT EXISTS wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(wishlistItems).Error)
	return db
}

func newTestProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:             uuid.New(),
		Name:           "Ceramic Mug",
		Category:       "homeware",
		UnitPriceCents: 1200,
		StockQuantity:  10,
		Active:         true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), catalog.NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestToggleThreeTimesEndsWishlisted(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	product := newTestProduct(t, db)
	input := ToggleInput{ProductID: product.ID}

	first, err := svc.Toggle(ctx, userID, input)
	require.NoError(t, err)
	assert.True(t, first.Wishlisted)

	second, err := svc.Toggle(ctx, userID, input)
	require.NoError(t, err)
	assert.False(t, second.Wishlisted)

	third, err := svc.Toggle(ctx, userID, input)
	require.NoError(t, err)
	assert.True(t, third.Wishlisted)

	list, err := svc.List(ctx, userID, ListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, product.ID, list.Items[0].ProductID)
}

func TestToggleSnapshotsProductFields(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	product := newTestProduct(t, db)

	_, err := svc.Toggle(ctx, userID, ToggleInput{ProductID: product.ID})
	require.NoError(t, err)

	// Reprice the product; the wishlist keeps the old snapshot.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("unit_price_cents", 9900).Error)

	list, err := svc.List(ctx, userID, ListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Ceramic Mug", list.Items[0].ProductName)
	assert.Equal(t, int64(1200), list.Items[0].UnitPriceCents)
}

func TestToggleUnknownProduct(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Toggle(context.Background(), uuid.New(), ToggleInput{ProductID: uuid.New()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestTogglesAreScopedPerUser(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	product := newTestProduct(t, db)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Toggle(ctx, alice, ToggleInput{ProductID: product.ID})
	require.NoError(t, err)

	bobList, err := svc.List(ctx, bob, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, bobList.Items)
}

func TestRemoveEntryScopedToOwner(t *testing.T) {
	db := setupWishlistTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	product := newTestProduct(t, db)

	_, err := svc.Toggle(ctx, userID, ToggleInput{ProductID: product.ID})
	require.NoError(t, err)

	list, err := svc.List(ctx, userID, ListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	entryID := list.Items[0].ID

	// Someone else's delete reads as missing.
	err = svc.Remove(ctx, uuid.New(), entryID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.Remove(ctx, userID, entryID))

	list, err = svc.List(ctx, userID, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
