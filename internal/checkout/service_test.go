package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
	"github.com/rakibulhaque/trendibay-backend/internal/orders"
	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
	pkgerrors "github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/metrics"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

type checkoutFixture struct {
	db       *gorm.DB
	cartRepo *cart.Repository
	svc      Service
}

func setupCheckout(t *testing.T) *checkoutFixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
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
);`, `
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
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number INTEGER NOT NULL DEFAULT 1000,
  user_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  district TEXT NOT NULL,
  street_address TEXT NOT NULL,
  address_note TEXT,
  subtotal_cents INTEGER NOT NULL,
  shipping_fee_cents INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  payer_number TEXT,
  transaction_ref TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`, `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  line_subtotal_cents INTEGER NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`, `
CREATE TABLE IF NOT EXISTS cart_clear_intents (
  order_id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  cart_item_ids TEXT NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`}
	for _, stmt := range ddl {
		require.NoError(t, gdb.Exec(stmt).Error)
	}

	mr := miniredis.RunT(t)
	cache := redis.NewClientFromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	cfg := config.Checkout{
		ShippingFlatFeeCents: 100,
		IdempotencyWindow:    15 * time.Minute,
		PersistMaxRetries:    3,
		PersistBackoffBase:   time.Millisecond,
		StepTimeout:          5 * time.Second,
		CartCacheTTL:         5 * time.Minute,
	}

	cartRepo := cart.NewRepository(gdb)
	svc, err := NewService(
		db.NewClientFromGorm(gdb),
		cartRepo,
		catalog.NewRepository(gdb),
		orders.NewRepository(gdb),
		NewIntentRepository(gdb),
		cache,
		cfg,
		metrics.NewCheckoutMetrics(nil),
	)
	require.NoError(t, err)

	return &checkoutFixture{db: gdb, cartRepo: cartRepo, svc: svc}
}

func (f *checkoutFixture) seedProduct(t *testing.T, name string, priceCents int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:             uuid.New(),
		Name:           name,
		Category:       "homeware",
		UnitPriceCents: priceCents,
		StockQuantity:  stock,
		Active:         true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *checkoutFixture) seedCartLine(t *testing.T, userID uuid.UUID, product *models.Product, qty int) *models.CartItem {
	t.Helper()
	item := &models.CartItem{
		ID:             uuid.New(),
		UserID:         userID,
		ProductID:      product.ID,
		Quantity:       qty,
		ProductName:    product.Name,
		UnitPriceCents: product.UnitPriceCents,
		Category:       product.Category,
	}
	require.NoError(t, f.db.Create(item).Error)
	return item
}

func codInput() CheckoutInput {
	return CheckoutInput{
		CustomerName:   "Rahim Uddin",
		CustomerEmail:  "Rahim@Example.com",
		CustomerPhone:  "01700000000",
		District:       "Dhaka",
		StreetAddress:  "12 Green Road",
		PaymentMethod:  "cod",
	}
}

func TestCheckoutHappyPathCOD(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	userID := uuid.New()

	mug := f.seedProduct(t, "Mug", 1000, 10)
	shirt := f.seedProduct(t, "Shirt", 2500, 10)
	f.seedCartLine(t, userID, mug, 2)
	f.seedCartLine(t, userID, shirt, 1)

	res, err := f.svc.Checkout(ctx, userID, codInput())
	require.NoError(t, err)

	assert.Equal(t, int64(4500), res.Order.SubtotalCents)
	assert.Equal(t, int64(100), res.Order.ShippingFeeCents)
	assert.Equal(t, int64(4600), res.Order.TotalCents)
	assert.Equal(t, enums.OrderStatusPending, res.Order.Status)
	assert.Equal(t, enums.PaymentStatusPending, res.Order.PaymentStatus)
	assert.Equal(t, "rahim@example.com", res.Order.CustomerEmail)
	assert.Len(t, res.Order.Lines, 2)
	assert.True(t, res.CartCleared)
	assert.False(t, res.Replayed)

	// Cart is cleared and the intent retired.
	remaining, err := f.cartRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	var intents int64
	require.NoError(t, f.db.Model(&models.CartClearIntent{}).Count(&intents).Error)
	assert.Zero(t, intents)

	// Stock moved inside the same transaction.
	var stocked models.Product
	require.NoError(t, f.db.First(&stocked, "id = ?", mug.ID).Error)
	assert.Equal(t, 8, stocked.StockQuantity)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := setupCheckout(t)

	_, err := f.svc.Checkout(context.Background(), uuid.New(), codInput())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeEmptyCart, typed.Code())
}

func TestCheckoutWalletNeedsTransactionRef(t *testing.T) {
	f := setupCheckout(t)
	userID := uuid.New()
	mug := f.seedProduct(t, "Mug", 1000, 10)
	f.seedCartLine(t, userID, mug, 1)

	input := codInput()
	input.PaymentMethod = "bkash"

	_, err := f.svc.Checkout(context.Background(), userID, input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	input.PayerNumber = "01811111111"
	input.TransactionRef = "TXN12345"
	res, err := f.svc.Checkout(context.Background(), userID, input)
	require.NoError(t, err)
	require.NotNil(t, res.Order.PayerNumber)
	assert.Equal(t, "01811111111", *res.Order.PayerNumber)
	require.NotNil(t, res.Order.TransactionRef)
	assert.Equal(t, "TXN12345", *res.Order.TransactionRef)
	// Declared wallet payments start out trusted.
	assert.Equal(t, enums.PaymentStatusPaid, res.Order.PaymentStatus)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	userID := uuid.New()

	mug := f.seedProduct(t, "Mug", 1000, 1)
	f.seedCartLine(t, userID, mug, 3)

	_, err := f.svc.Checkout(ctx, userID, codInput())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// Nothing committed: no order, cart untouched, stock untouched.
	var orderCount int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	remaining, err := f.cartRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	var stocked models.Product
	require.NoError(t, f.db.First(&stocked, "id = ?", mug.ID).Error)
	assert.Equal(t, 1, stocked.StockQuantity)
}

func TestCheckoutDoubleSubmissionReplays(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	userID := uuid.New()

	mug := f.seedProduct(t, "Mug", 1000, 10)
	line := f.seedCartLine(t, userID, mug, 2)

	first, err := f.svc.Checkout(ctx, userID, codInput())
	require.NoError(t, err)

	// A second request carrying the same snapshot, as happens when the
	// client retries before seeing the first response.
	require.NoError(t, f.db.Create(&models.CartItem{
		ID:             line.ID,
		UserID:         userID,
		ProductID:      mug.ID,
		Quantity:       2,
		ProductName:    mug.Name,
		UnitPriceCents: mug.UnitPriceCents,
		Category:       mug.Category,
	}).Error)

	second, err := f.svc.Checkout(ctx, userID, codInput())
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.True(t, second.CartCleared)
	assert.Equal(t, first.Order.ID, second.Order.ID)

	// Still exactly one order; no double stock decrement.
	var orderCount int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)

	var stocked models.Product
	require.NoError(t, f.db.First(&stocked, "id = ?", mug.ID).Error)
	assert.Equal(t, 8, stocked.StockQuantity)
}

func TestCheckoutReplayReportsDeferredCartClear(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	userID := uuid.New()

	mug := f.seedProduct(t, "Mug", 1000, 10)
	line := f.seedCartLine(t, userID, mug, 2)

	first, err := f.svc.Checkout(ctx, userID, codInput())
	require.NoError(t, err)
	require.True(t, first.CartCleared)

	// Put the world back the way it looks when the inline clear failed:
	// the snapshot line is still in the cart and the intent row is
	// waiting for the sweep.
	require.NoError(t, f.db.Create(&models.CartItem{
		ID:             line.ID,
		UserID:         userID,
		ProductID:      mug.ID,
		Quantity:       2,
		ProductName:    mug.Name,
		UnitPriceCents: mug.UnitPriceCents,
		Category:       mug.Category,
	}).Error)
	require.NoError(t, f.db.Create(&models.CartClearIntent{
		OrderID:     first.Order.ID,
		UserID:      userID,
		CartItemIDs: []uuid.UUID{line.ID},
	}).Error)

	second, err := f.svc.Checkout(ctx, userID, codInput())
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.False(t, second.CartCleared)
}

func TestCheckoutOrderLinesKeepTheirSnapshot(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	userID := uuid.New()

	mug := f.seedProduct(t, "Mug", 1000, 10)
	f.seedCartLine(t, userID, mug, 2)

	res, err := f.svc.Checkout(ctx, userID, codInput())
	require.NoError(t, err)

	// The catalog moves on: price hike, rename, then removal.
	catalogRepo := catalog.NewRepository(f.db)
	product, err := catalogRepo.GetAny(ctx, mug.ID)
	require.NoError(t, err)
	product.Name = "Mug Deluxe"
	product.UnitPriceCents = 9900
	require.NoError(t, catalogRepo.Update(ctx, product))
	affected, err := catalogRepo.SoftDelete(ctx, mug.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	// The order still reads exactly what was bought.
	order, err := orders.NewRepository(f.db).GetByIDForUser(ctx, res.Order.ID, userID)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Mug", order.Lines[0].ProductName)
	assert.Equal(t, int64(1000), order.Lines[0].UnitPriceCents)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.Equal(t, int64(2000), order.Lines[0].LineSubtotalCents)
}

func TestCheckoutMidCheckoutAdditionsSurvive(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()
	userID := uuid.New()

	mug := f.seedProduct(t, "Mug", 1000, 10)
	shirt := f.seedProduct(t, "Shirt", 2500, 10)
	f.seedCartLine(t, userID, mug, 1)

	// The checkout snapshot carries only the mug; the shirt lands after.
	items, err := f.cartRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	res, err := f.svc.Checkout(ctx, userID, codInput())
	require.NoError(t, err)
	require.Len(t, res.Order.Lines, 1)

	late := f.seedCartLine(t, userID, shirt, 1)

	remaining, err := f.cartRepo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, late.ID, remaining[0].ID)
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	f := setupCheckout(t)
	userID := uuid.New()
	mug := f.seedProduct(t, "Mug", 1000, 10)
	f.seedCartLine(t, userID, mug, 1)

	input := codInput()
	input.PaymentMethod = "paypal"

	_, err := f.svc.Checkout(context.Background(), userID, input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
