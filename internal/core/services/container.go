package services

import (
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
)

// NewContainer wires every service against the repository provider and
// returns the container the handlers consume.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Order:      NewOrderService(repos.OrderRepo),
		Settlement: NewSettlementService(repos.OrderRepo, repos.WalletRepo, repos.CategoryRepo),
		CashFlow:   NewCashFlowService(repos.CashFlowRepo, repos.WalletRepo, repos.CategoryRepo),
		Wallet:     NewWalletService(repos.WalletRepo, repos.CashFlowRepo),
		Category:   NewCategoryService(repos.CategoryRepo),
		Product:    NewProductService(repos.ProductRepo),
	}
}
