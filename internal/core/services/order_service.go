package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/dto"
	"github.com/laquila/backend/internal/middleware"
)

var (
	ErrNoItems           = errors.New("order must have at least one item")
	ErrItemPrice         = errors.New("item unit price must not be negative")
	ErrItemQuantity      = errors.New("item quantity must be positive")
	ErrUnknownStatus     = errors.New("unknown order status filter")
	ErrTotalBelowSettled = errors.New("new item total is below the settled amount")
)

// orderService provides the order ledger store operations. The settled
// amount and payment status are owned by the settlement coordinator; nothing
// here touches them.
type orderService struct {
	orderRepo portsrepo.OrderRepositoryFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade) portssvc.OrderSvcFacade {
	return &orderService{orderRepo: orderRepo}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// buildItems validates item inputs and converts them to domain items owned
// by the given order.
func buildItems(orderID string, inputs []dto.OrderItemInput) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, len(inputs))
	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %w (line %d)", apperrors.ErrValidation, ErrItemQuantity, i+1)
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: %w (line %d)", apperrors.ErrValidation, ErrItemPrice, i+1)
		}
		items[i] = domain.OrderItem{
			ItemID:      uuid.NewString(),
			OrderID:     orderID,
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			UnitPrice:   in.UnitPrice,
			Quantity:    in.Quantity,
			Variant:     in.Variant,
		}
	}
	return items, nil
}

// CreateOrder persists a new order and its items as one atomic unit. The
// invoice number is assigned by the repository inside the same transaction
// as the insert.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoItems)
	}

	orderID := uuid.NewString()
	items, err := buildItems(orderID, req.Items)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		OrderID:       orderID,
		Marketplace:   req.Marketplace,
		CustomerName:  req.CustomerName,
		City:          req.City,
		Address:       req.Address,
		Phone:         req.Phone,
		OrderStatus:   domain.OrderConfirmed,
		PaymentStatus: domain.PaymentPending,
		AmountSettled: decimal.Zero,
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error("Failed to create order", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info("Order created", slog.String("order_id", created.OrderID), slog.String("invoice_number", created.InvoiceNumber))
	return created, nil
}

// UpdateOrder applies partial header updates and, when items are supplied,
// replaces the entire item set atomically. It never touches amountSettled; a
// replacement that would shrink the total below the settled amount is
// rejected, and the payment status is rederived when the total changes.
func (s *orderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find order for update", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	updated := false
	if req.Marketplace != nil {
		order.Marketplace = *req.Marketplace
		updated = true
	}
	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
		updated = true
	}
	if req.City != nil {
		order.City = *req.City
		updated = true
	}
	if req.Address != nil {
		order.Address = *req.Address
		updated = true
	}
	if req.Phone != nil {
		order.Phone = *req.Phone
		updated = true
	}

	replaceItems := req.Items != nil
	if replaceItems {
		if len(*req.Items) == 0 {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoItems)
		}
		items, err := buildItems(orderID, *req.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
		// The settled amount never decreases, so the replacement set must
		// still cover it. The repository re-checks under a row lock.
		if order.Total().LessThan(order.AmountSettled) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrTotalBelowSettled)
		}
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for order update", slog.String("order_id", orderID))
		return order, nil
	}

	result, err := s.orderRepo.UpdateOrder(ctx, *order, replaceItems)
	if err != nil {
		logger.Error("Failed to update order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}

	logger.Info("Order updated", slog.String("order_id", orderID), slog.Bool("items_replaced", replaceItems))
	return result, nil
}

// CancelOrder transitions the order to Cancelled. The repository rejects the
// transition with a conflict while any amount is settled against the order.
func (s *orderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.CancelOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Cancel rejected for partially settled order", slog.String("order_id", orderID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to cancel order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}

	logger.Info("Order cancelled", slog.String("order_id", orderID))
	return order, nil
}

// GetOrderByID retrieves an order with its items; total and payment status
// are recomputed from the items on every read.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return order, nil
}

// ListOrders retrieves a filtered, cursor-paginated page of orders.
func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.OrderFilter{
		From:      params.From,
		To:        params.To,
		Search:    params.Search,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != nil {
		switch status := domain.OrderStatus(*params.Status); status {
		case domain.OrderConfirmed, domain.OrderCancelled:
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownStatus, *params.Status)
		}
	}

	orders, nextToken, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		logger.Error("Failed to list orders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &dto.ListOrdersResponse{
		Orders:    dto.ToOrderResponses(orders),
		NextToken: nextToken,
	}, nil
}
