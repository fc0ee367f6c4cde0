package services

import (
	"context"
	"time"

	"github.com/laquila/backend/internal/core/domain"
	"github.com/laquila/backend/internal/dto"
	"github.com/shopspring/decimal"
)

// OrderSvcFacade exposes the order ledger store: order/item persistence with
// totals always derived from the item set.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)
}

// SettlementSvcFacade is the settlement coordinator: the only entry point
// that mutates an order's settled amount, and with it the ledger.
type SettlementSvcFacade interface {
	RecordSettlement(ctx context.Context, req dto.RecordSettlementRequest) (*domain.Order, error)
}

// CashFlowSvcFacade exposes the cash-flow ledger read path and the manual
// CRUD path for non-settlement entries.
type CashFlowSvcFacade interface {
	AppendManualEntry(ctx context.Context, req dto.CreateCashFlowEntryRequest) (*domain.CashFlowEntry, error)
	UpdateManualEntry(ctx context.Context, entryID string, req dto.UpdateCashFlowEntryRequest) (*domain.CashFlowEntry, error)
	DeleteManualEntry(ctx context.Context, entryID string) error
	ListEntries(ctx context.Context, params dto.ListCashFlowParams) (*dto.ListCashFlowEntriesResponse, error)
}

// WalletSvcFacade exposes wallet reference data and on-demand balance
// projection.
type WalletSvcFacade interface {
	GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	BalanceOf(ctx context.Context, walletID string, asOf *time.Time) (decimal.Decimal, error)
}

// CategorySvcFacade exposes finance category reference data.
type CategorySvcFacade interface {
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.FinanceCategory, error)
	ListCategories(ctx context.Context) ([]domain.FinanceCategory, error)
}

// ProductSvcFacade exposes catalog lookups for order-line prefill.
type ProductSvcFacade interface {
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Order      OrderSvcFacade
	Settlement SettlementSvcFacade
	CashFlow   CashFlowSvcFacade
	Wallet     WalletSvcFacade
	Category   CategorySvcFacade
	Product    ProductSvcFacade
}
