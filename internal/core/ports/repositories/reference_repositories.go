package repositories

import (
	"context"

	"github.com/laquila/backend/internal/core/domain"
)

// WalletRepositoryFacade defines persistence operations for wallets.
// Wallets are small reference data; the full CRUD screen lives outside this
// service, so writes exist mainly for seeding.
type WalletRepositoryFacade interface {
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
}

// CategoryRepositoryFacade defines persistence operations for finance
// categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.FinanceCategory) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.FinanceCategory, error)
	ListCategories(ctx context.Context) ([]domain.FinanceCategory, error)
}

// ProductRepositoryFacade defines persistence operations for catalog
// products, consumed only to prefill order lines.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	OrderRepo    OrderRepositoryFacade
	CashFlowRepo CashFlowRepositoryFacade
	WalletRepo   WalletRepositoryFacade
	CategoryRepo CategoryRepositoryFacade
	ProductRepo  ProductRepositoryFacade
}
