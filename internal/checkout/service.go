package checkout

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
	"github.com/rakibulhaque/trendibay-backend/internal/orders"
	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/metrics"
	"github.com/rakibulhaque/trendibay-backend/pkg/redis"
)

const inProgressMarker = "pending"

// Service orchestrates the cart-to-order pipeline.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (CheckoutResultDTO, error)
}

type service struct {
	client      *db.Client
	cartRepo    *cart.Repository
	catalogRepo *catalog.Repository
	ordersRepo  *orders.Repository
	intentRepo  *IntentRepository
	cache       *redis.Client
	cfg         config.Checkout
	metrics     *metrics.CheckoutMetrics
}

func NewService(
	client *db.Client,
	cartRepo *cart.Repository,
	catalogRepo *catalog.Repository,
	ordersRepo *orders.Repository,
	intentRepo *IntentRepository,
	cache *redis.Client,
	cfg config.Checkout,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("checkout: db client is required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("checkout: cart repository is required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("checkout: catalog repository is required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("checkout: orders repository is required")
	}
	if intentRepo == nil {
		return nil, fmt.Errorf("checkout: intent repository is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("checkout: redis client is required")
	}
	return &service{
		client:      client,
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		ordersRepo:  ordersRepo,
		intentRepo:  intentRepo,
		cache:       cache,
		cfg:         cfg,
		metrics:     checkoutMetrics,
	}, nil
}

// Checkout turns the user's current cart into an order.
//
// The cart is re-read and totals recomputed server-side; nothing from
// the client is trusted for money. A content hash of the cart snapshot
// guards against double submission, the order and its cart-clear
// intent commit in one transaction, and the cart lines themselves are
// removed after commit so a failed clear can never lose a paid order.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (CheckoutResultDTO, error) {
	logg := logger.FromContext(ctx)
	started := time.Now()

	method, err := validatePayment(input)
	if err != nil {
		s.metrics.IncAttempt("validation_error")
		return CheckoutResultDTO{}, err
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		s.metrics.IncAttempt("error")
		return CheckoutResultDTO{}, errors.Wrap(errors.CodeInternal, err, "load cart")
	}
	if len(items) == 0 {
		s.metrics.IncAttempt("empty_cart")
		return CheckoutResultDTO{}, errors.New(errors.CodeEmptyCart, "cart is empty")
	}

	subtotal := int64(0)
	for i := range items {
		subtotal += items[i].LineSubtotalCents()
	}
	shipping := s.cfg.ShippingFlatFeeCents
	total := subtotal + shipping

	idemKey := redis.IdempotencyKey("checkout", contentHash(userID, items, method, total))
	won, err := s.cache.SetNX(ctx, idemKey, inProgressMarker, s.cfg.IdempotencyWindow)
	if err != nil {
		s.metrics.IncAttempt("error")
		return CheckoutResultDTO{}, errors.Wrap(errors.CodeDependency, err, "claim checkout slot")
	}
	if !won {
		return s.replay(ctx, userID, idemKey)
	}

	order := buildOrder(userID, input, method, items, subtotal, shipping, total)
	intent := &models.CartClearIntent{
		OrderID: order.ID,
		UserID:  userID,
	}
	for i := range items {
		intent.CartItemIDs = append(intent.CartItemIDs, items[i].ID)
	}

	if err := s.persist(ctx, order, intent, items); err != nil {
		// Release the slot so a retry is not locked out for the window.
		if delErr := s.cache.Del(ctx, idemKey); delErr != nil {
			logg.Warn("release checkout slot", delErr)
		}
		s.metrics.IncAttempt("error")
		return CheckoutResultDTO{}, err
	}

	if err := s.cache.Set(ctx, idemKey, order.ID.String(), s.cfg.IdempotencyWindow); err != nil {
		logg.Warn("record checkout replay target", err)
	}

	cleared := s.clearCart(ctx, userID, order.ID, intent.CartItemIDs)

	s.metrics.IncAttempt("success")
	s.metrics.ObserveDuration(time.Since(started))
	logg.WithFields(map[string]any{
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
		"total_cents":  order.TotalCents,
		"cart_cleared": cleared,
	}).Info("checkout completed")

	return CheckoutResultDTO{Order: orders.ToDTO(order), CartCleared: cleared}, nil
}

// persist commits the order, its lines, the stock decrements, and the
// cart-clear intent in one transaction, retrying transient conflicts
// with exponential backoff.
func (s *service) persist(ctx context.Context, order *models.Order, intent *models.CartClearIntent, items []models.CartItem) error {
	backoff := retry.WithMaxRetries(s.cfg.PersistMaxRetries, retry.NewExponential(s.cfg.PersistBackoffBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.StepTimeout)
		defer cancel()

		err := s.client.WithTx(attemptCtx, func(tx *gorm.DB) error {
			catalogTx := s.catalogRepo.WithTx(tx)
			for i := range items {
				affected, err := catalogTx.DecrementStock(attemptCtx, items[i].ProductID, items[i].Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					return errors.New(errors.CodeValidation, "insufficient stock").
						WithDetails(map[string]any{"product_id": items[i].ProductID, "product_name": items[i].ProductName})
				}
			}

			if err := s.ordersRepo.WithTx(tx).Create(attemptCtx, order); err != nil {
				return err
			}
			return s.intentRepo.WithTx(tx).Create(attemptCtx, intent)
		})
		if err != nil && db.IsRetryableTxError(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil {
		return nil
	}
	if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeValidation {
		return err
	}
	return errors.Wrap(errors.CodeCheckoutFailed, err, "persist order")
}

// clearCart removes the snapshotted cart lines after commit. Only the
// lines captured at checkout go; anything the user added meanwhile
// stays. On failure the intent row remains for the sweep job.
func (s *service) clearCart(ctx context.Context, userID, orderID uuid.UUID, itemIDs []uuid.UUID) bool {
	logg := logger.FromContext(ctx)

	if _, err := s.cartRepo.DeleteByIDs(ctx, userID, itemIDs); err != nil {
		logg.WithField("order_id", orderID.String()).Warn("clear cart after checkout", err)
		s.metrics.IncCartClearMiss()
		return false
	}
	if err := s.intentRepo.Delete(ctx, orderID); err != nil {
		// Lines are gone; the sweep will find an empty delete and
		// retire the intent.
		logg.WithField("order_id", orderID.String()).Warn("retire cart clear intent", err)
	}
	if err := s.cache.Del(ctx, redis.CartCacheKey(userID.String())); err != nil {
		logg.Warn("invalidate cart cache", err)
	}
	return true
}

// replay resolves a duplicate submission to its original order.
func (s *service) replay(ctx context.Context, userID uuid.UUID, idemKey string) (CheckoutResultDTO, error) {
	raw, ok, err := s.cache.Get(ctx, idemKey)
	if err != nil {
		s.metrics.IncAttempt("error")
		return CheckoutResultDTO{}, errors.Wrap(errors.CodeDependency, err, "read checkout slot")
	}
	if !ok || raw == inProgressMarker {
		s.metrics.IncAttempt("in_progress")
		return CheckoutResultDTO{}, errors.New(errors.CodeCheckoutFailed, "checkout already in progress, retry shortly")
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		s.metrics.IncAttempt("error")
		return CheckoutResultDTO{}, errors.New(errors.CodeCheckoutFailed, "checkout replay target unreadable")
	}

	order, err := s.ordersRepo.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		s.metrics.IncAttempt("error")
		return CheckoutResultDTO{}, errors.Wrap(errors.CodeInternal, err, "load replayed order")
	}

	// An outstanding intent means the original attempt deferred the
	// cart clear to the sweep, so report that honestly.
	pending, err := s.intentRepo.Exists(ctx, order.ID)
	if err != nil {
		s.metrics.IncAttempt("error")
		return CheckoutResultDTO{}, errors.Wrap(errors.CodeInternal, err, "check cart clear intent")
	}

	s.metrics.IncIdempotentHit()
	s.metrics.IncAttempt("replayed")
	return CheckoutResultDTO{Order: orders.ToDTO(order), CartCleared: !pending, Replayed: true}, nil
}

func validatePayment(input CheckoutInput) (enums.PaymentMethod, error) {
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(input.PaymentMethod))
	if err != nil {
		return "", errors.New(errors.CodeValidation, "invalid payment method").
			WithDetails(map[string]string{"payment_method": input.PaymentMethod})
	}

	if method.RequiresTransactionRef() {
		missing := map[string]string{}
		if strings.TrimSpace(input.PayerNumber) == "" {
			missing["payer_number"] = "required for " + method.String()
		}
		if strings.TrimSpace(input.TransactionRef) == "" {
			missing["transaction_ref"] = "required for " + method.String()
		}
		if len(missing) > 0 {
			return "", errors.New(errors.CodeValidation, "payment details incomplete").WithDetails(missing)
		}
	}
	return method, nil
}

func buildOrder(userID uuid.UUID, input CheckoutInput, method enums.PaymentMethod, items []models.CartItem, subtotal, shipping, total int64) *models.Order {
	order := &models.Order{
		ID:               uuid.New(),
		UserID:           userID,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerEmail:    strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
		District:         strings.TrimSpace(input.District),
		StreetAddress:    strings.TrimSpace(input.StreetAddress),
		SubtotalCents:    subtotal,
		ShippingFeeCents: shipping,
		TotalCents:       total,
		PaymentMethod:    method,
		PaymentStatus:    enums.PaymentStatusPending,
		Status:           enums.OrderStatusPending,
	}
	if note := strings.TrimSpace(input.AddressNote); note != "" {
		order.AddressNote = &note
	}
	if method.RequiresTransactionRef() {
		// Wallet payments are trusted as declared. The customer typed a
		// transaction id; admins correct the payment status later if it
		// does not check out.
		payer := strings.TrimSpace(input.PayerNumber)
		ref := strings.TrimSpace(input.TransactionRef)
		order.PayerNumber = &payer
		order.TransactionRef = &ref
		order.PaymentStatus = enums.PaymentStatusPaid
	}

	for i := range items {
		item := &items[i]
		productID := item.ProductID
		order.Lines = append(order.Lines, models.OrderLineItem{
			ID:                uuid.New(),
			OrderID:           order.ID,
			ProductID:         &productID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPriceCents,
			LineSubtotalCents: item.LineSubtotalCents(),
			ImageURL:          item.ImageURL,
			Category:          item.Category,
		})
	}
	return order
}

// contentHash fingerprints a checkout so the same cart submitted twice
// within the window maps to the same order. Lines are sorted by cart
// item id so DB ordering cannot change the hash.
func contentHash(userID uuid.UUID, items []models.CartItem, method enums.PaymentMethod, total int64) string {
	lines := make([]string, 0, len(items))
	for i := range items {
		item := &items[i]
		lines = append(lines, fmt.Sprintf("%s|%s|%d|%d", item.ID, item.ProductID, item.Quantity, item.UnitPriceCents))
	}
	sort.Strings(lines)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|", userID, method, total)
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
