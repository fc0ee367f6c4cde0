package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	orderRepo := newPgxOrderRepository(dbPool)
	cashFlowRepo := newPgxCashFlowRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)

	return portsrepo.RepositoryProvider{
		OrderRepo:    orderRepo,
		CashFlowRepo: cashFlowRepo,
		WalletRepo:   walletRepo,
		CategoryRepo: categoryRepo,
		ProductRepo:  productRepo,
	}
}
