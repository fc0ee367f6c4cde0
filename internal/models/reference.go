package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet mirrors a row of the wallets table. No balance column exists by
// design; balances are projected from the ledger.
type Wallet struct {
	WalletID  string
	Name      string
	CreatedAt time.Time
}

// FinanceCategory mirrors a row of the finance_categories table.
type FinanceCategory struct {
	CategoryID string
	Name       string
	Direction  string
	CreatedAt  time.Time
}

// Product mirrors a row of the products table.
type Product struct {
	ProductID string
	Name      string
	SKU       *string
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}
