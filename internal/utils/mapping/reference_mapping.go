package mapping

import (
	"github.com/laquila/backend/internal/core/domain"
	"github.com/laquila/backend/internal/models"
)

// ToDomainWallet converts a model Wallet to a domain Wallet
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:  m.WalletID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:  d.WalletID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainCategory converts a model FinanceCategory to a domain FinanceCategory
func ToDomainCategory(m models.FinanceCategory) domain.FinanceCategory {
	return domain.FinanceCategory{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Direction:  domain.CategoryDirection(m.Direction),
		CreatedAt:  m.CreatedAt,
	}
}

// ToModelCategory converts a domain FinanceCategory to a model FinanceCategory
func ToModelCategory(d domain.FinanceCategory) models.FinanceCategory {
	return models.FinanceCategory{
		CategoryID: d.CategoryID,
		Name:       d.Name,
		Direction:  string(d.Direction),
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID: m.ProductID,
		Name:      m.Name,
		SKU:       m.SKU,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
	}
}

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID: d.ProductID,
		Name:      d.Name,
		SKU:       d.SKU,
		UnitPrice: d.UnitPrice,
		CreatedAt: d.CreatedAt,
	}
}
