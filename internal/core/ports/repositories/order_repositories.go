package repositories

import (
	"context"
	"time"

	"github.com/laquila/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderFilter narrows ListOrders. Nil fields are ignored. Search matches
// invoice number, customer name and marketplace.
type OrderFilter struct {
	Status    *domain.OrderStatus
	From      *time.Time
	To        *time.Time
	Search    string
	Limit     int
	NextToken *string
}

// OrderReader defines read operations for order data. Returned orders always
// carry their full item set so totals can be recomputed by the caller.
type OrderReader interface {
	// FindOrderByID retrieves a specific order with its items.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a filtered, cursor-paginated list of orders with
	// their items. Returns the page and a token for the next page, if any.
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, *string, error)
}

// OrderWriter defines write operations for order data.
type OrderWriter interface {
	// CreateOrder persists the order header and its items as one atomic unit
	// and assigns the invoice number inside the same transaction. The passed
	// order must already carry its ID, items and creation time.
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)

	// UpdateOrder updates the order header and, when replaceItems is true,
	// atomically replaces the entire item set under a row lock, rejecting
	// replacements whose total falls below amount_settled and rederiving
	// payment_status from the new total. amount_settled is never touched.
	UpdateOrder(ctx context.Context, order domain.Order, replaceItems bool) (*domain.Order, error)

	// CancelOrder transitions the order to Cancelled. Fails with a conflict
	// while any amount is settled against the order.
	CancelOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderSettlementSupport is the write path reserved for the settlement
// coordinator: it is the only operation allowed to mutate amount_settled and
// payment_status, and it appends the matching ledger entry in the same
// database transaction.
type OrderSettlementSupport interface {
	SettleOrder(ctx context.Context, orderID string, amount decimal.Decimal, walletID string, categoryName string, occurredAt time.Time) (*domain.Order, error)
}

// OrderRepositoryFacade combines all order-related repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	OrderSettlementSupport
}
