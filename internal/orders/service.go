package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/metrics"
	"github.com/rakibulhaque/trendibay-backend/pkg/pagination"
)

// Service exposes order reads for customers and fulfillment control
// for admins.
type Service interface {
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID, query ListOrdersQuery) (pagination.Page[OrderDTO], error)

	AdminGetOrder(ctx context.Context, orderID uuid.UUID) (OrderDTO, error)
	AdminListOrders(ctx context.Context, query ListOrdersQuery) (pagination.Page[OrderDTO], error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (OrderDTO, error)
	AdminUpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, input UpdatePaymentStatusInput) (OrderDTO, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.OrderMetrics
}

func NewService(repo *Repository, orderMetrics *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders: repository is required")
	}
	return &service{repo: repo, metrics: orderMetrics}, nil
}

// GetOrder returns the order only when the caller owns it. Orders
// owned by someone else look like missing orders.
func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error) {
	order, err := s.repo.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return OrderDTO{}, errors.New(errors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, errors.Wrap(errors.CodeInternal, err, "load order")
	}
	return ToDTO(order), nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, query ListOrdersQuery) (pagination.Page[OrderDTO], error) {
	limit, cursor, err := parseListQuery(query)
	if err != nil {
		return pagination.Page[OrderDTO]{}, err
	}

	rows, err := s.repo.ListByUser(ctx, userID, cursor, limit+1)
	if err != nil {
		return pagination.Page[OrderDTO]{}, errors.Wrap(errors.CodeInternal, err, "list orders")
	}
	return buildPage(rows, limit), nil
}

func (s *service) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (OrderDTO, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return OrderDTO{}, errors.New(errors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, errors.Wrap(errors.CodeInternal, err, "load order")
	}
	return ToDTO(order), nil
}

func (s *service) AdminListOrders(ctx context.Context, query ListOrdersQuery) (pagination.Page[OrderDTO], error) {
	limit, cursor, err := parseListQuery(query)
	if err != nil {
		return pagination.Page[OrderDTO]{}, err
	}

	var status enums.OrderStatus
	if raw := strings.TrimSpace(query.Status); raw != "" {
		parsed, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return pagination.Page[OrderDTO]{}, errors.New(errors.CodeValidation, "invalid status filter").
				WithDetails(map[string]string{"status": raw})
		}
		status = parsed
	}

	rows, err := s.repo.ListAll(ctx, status, cursor, limit+1)
	if err != nil {
		return pagination.Page[OrderDTO]{}, errors.Wrap(errors.CodeInternal, err, "list orders")
	}
	return buildPage(rows, limit), nil
}

// AdminUpdateStatus walks the fulfillment state machine. Replaying the
// current status is a no-op success; everything else must be a legal
// edge.
func (s *service) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (OrderDTO, error) {
	logg := logger.FromContext(ctx)

	next, err := enums.ParseOrderStatus(strings.TrimSpace(input.Status))
	if err != nil {
		return OrderDTO{}, errors.New(errors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": input.Status})
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return OrderDTO{}, errors.New(errors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, errors.Wrap(errors.CodeInternal, err, "load order")
	}

	if order.Status == next {
		return ToDTO(order), nil
	}
	if !order.Status.CanTransitionTo(next) {
		return OrderDTO{}, errors.New(errors.CodeStateConflict, "order status transition not allowed").
			WithDetails(map[string]string{"from": order.Status.String(), "to": next.String()})
	}

	affected, err := s.repo.UpdateStatus(ctx, orderID, order.Status, next)
	if err != nil {
		return OrderDTO{}, errors.Wrap(errors.CodeInternal, err, "update order status")
	}
	if affected == 0 {
		// A concurrent admin moved the order first.
		return OrderDTO{}, errors.New(errors.CodeStateConflict, "order status changed concurrently")
	}

	s.metrics.IncTransition(order.Status.String(), next.String())
	order.Status = next
	logg.WithFields(map[string]any{
		"order_id": orderID.String(),
		"status":   next.String(),
	}).Info("order status updated")
	return ToDTO(order), nil
}

func (s *service) AdminUpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, input UpdatePaymentStatusInput) (OrderDTO, error) {
	status, err := enums.ParsePaymentStatus(strings.TrimSpace(input.PaymentStatus))
	if err != nil {
		return OrderDTO{}, errors.New(errors.CodeValidation, "invalid payment status").
			WithDetails(map[string]string{"payment_status": input.PaymentStatus})
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return OrderDTO{}, errors.New(errors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, errors.Wrap(errors.CodeInternal, err, "load order")
	}

	if order.PaymentStatus != status {
		if _, err := s.repo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
			return OrderDTO{}, errors.Wrap(errors.CodeInternal, err, "update payment status")
		}
		order.PaymentStatus = status
	}
	return ToDTO(order), nil
}

func parseListQuery(query ListOrdersQuery) (int, *pagination.Cursor, error) {
	limit := pagination.ClampLimit(query.Limit)

	var cursor *pagination.Cursor
	if raw := strings.TrimSpace(query.Cursor); raw != "" {
		decoded, err := pagination.Decode(raw)
		if err != nil {
			return 0, nil, errors.New(errors.CodeValidation, "invalid cursor")
		}
		cursor = &decoded
	}
	return limit, cursor, nil
}

func buildPage(rows []models.Order, limit int) pagination.Page[OrderDTO] {
	page := pagination.Page[OrderDTO]{Items: make([]OrderDTO, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next := pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
		page.NextCursor = &next
	}
	for i := range rows {
		page.Items = append(page.Items, ToDTO(&rows[i]))
	}
	return page
}
