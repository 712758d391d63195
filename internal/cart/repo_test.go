package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  product_name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func newCartItem(userID, productID uuid.UUID, qty int, priceCents int64) *models.CartItem {
	return &models.CartItem{
		ID:             uuid.New(),
		UserID:         userID,
		ProductID:      productID,
		Quantity:       qty,
		ProductName:    "Test Product",
		UnitPriceCents: priceCents,
	}
}

func TestUpsertMergesQuantityAdditively(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	require.NoError(t, repo.Upsert(ctx, newCartItem(userID, productID, 2, 1000)))
	require.NoError(t, repo.Upsert(ctx, newCartItem(userID, productID, 3, 1000)))

	items, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, int64(5000), items[0].LineSubtotalCents())
}

func TestUpsertKeepsCartsSeparate(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, repo.Upsert(ctx, newCartItem(alice, productID, 1, 500)))
	require.NoError(t, repo.Upsert(ctx, newCartItem(bob, productID, 4, 500)))

	aliceItems, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, 1, aliceItems[0].Quantity)

	bobItems, err := repo.ListByUser(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobItems, 1)
	assert.Equal(t, 4, bobItems[0].Quantity)
}

func TestUpdateQuantityEnforcesOwnership(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	item := newCartItem(owner, uuid.New(), 1, 750)
	require.NoError(t, repo.Upsert(ctx, item))

	affected, err := repo.UpdateQuantity(ctx, owner, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateQuantity(ctx, uuid.New(), item.ID, 99)
	require.NoError(t, err)
	assert.Zero(t, affected)

	items, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestRemoveEnforcesOwnership(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	item := newCartItem(owner, uuid.New(), 1, 750)
	require.NoError(t, repo.Upsert(ctx, item))

	affected, err := repo.Remove(ctx, uuid.New(), item.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Remove(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestDeleteByIDsLeavesOtherLines(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	checkedOut := newCartItem(userID, uuid.New(), 2, 1000)
	addedLater := newCartItem(userID, uuid.New(), 1, 2500)
	require.NoError(t, repo.Upsert(ctx, checkedOut))
	require.NoError(t, repo.Upsert(ctx, addedLater))

	affected, err := repo.DeleteByIDs(ctx, userID, []uuid.UUID{checkedOut.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	items, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, addedLater.ID, items[0].ID)
}

func TestDeleteByIDsEmptyListIsNoop(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.DeleteByIDs(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestClearEmptiesOnlyThatUser(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	require.NoError(t, repo.Upsert(ctx, newCartItem(alice, uuid.New(), 1, 100)))
	require.NoError(t, repo.Upsert(ctx, newCartItem(alice, uuid.New(), 2, 200)))
	require.NoError(t, repo.Upsert(ctx, newCartItem(bob, uuid.New(), 1, 300)))

	affected, err := repo.Clear(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	bobItems, err := repo.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, bobItems, 1)
}
