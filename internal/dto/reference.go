package dto

import (
	"time"

	"github.com/laquila/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID string `json:"walletID"`
	Name     string `json:"name"`
}

// WalletBalanceResponse carries a projected wallet balance. The balance is
// computed from the ledger at request time and never stored.
type WalletBalanceResponse struct {
	WalletID string          `json:"walletID"`
	Balance  decimal.Decimal `json:"balance"`
	AsOf     *time.Time      `json:"asOf,omitempty"`
}

// CategoryResponse defines the data returned for a finance category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Direction  string `json:"direction"`
}

// ProductResponse defines the catalog data used to prefill an order line.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ToWalletResponse converts a domain.Wallet to its DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{WalletID: w.WalletID, Name: w.Name}
}

// ToCategoryResponse converts a domain.FinanceCategory to its DTO.
func ToCategoryResponse(c *domain.FinanceCategory) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Direction: string(c.Direction)}
}

// ToProductResponse converts a domain.Product to its DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{ProductID: p.ProductID, Name: p.Name, SKU: p.SKU, UnitPrice: p.UnitPrice}
}
