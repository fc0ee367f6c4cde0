package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowType classifies a ledger entry.
type CashFlowType string

const (
	CashFlowIncome   CashFlowType = "income"
	CashFlowExpense  CashFlowType = "expense"
	CashFlowTransfer CashFlowType = "transfer"
)

// CashFlowEntry is an immutable record of money moving into, out of, or
// between wallets. The category is denormalized by name so that renaming or
// deleting a category never rewrites ledger history. OrderID is set only on
// settlement-originated entries and marks them as untouchable by the manual
// CRUD path.
type CashFlowEntry struct {
	EntryID      string          `json:"entryID"`
	Type         CashFlowType    `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryName *string         `json:"categoryName,omitempty"`
	WalletID     string          `json:"walletID"`
	ToWalletID   *string         `json:"toWalletID,omitempty"`
	OrderID      *string         `json:"orderID,omitempty"`
	Description  *string         `json:"description,omitempty"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

// SignedContribution returns the entry's effect on the given wallet:
// income to the wallet counts positive, expense and outgoing transfers
// negative, incoming transfers positive. Entries that do not reference the
// wallet contribute zero.
func (e CashFlowEntry) SignedContribution(walletID string) decimal.Decimal {
	switch e.Type {
	case CashFlowIncome:
		if e.WalletID == walletID {
			return e.Amount
		}
	case CashFlowExpense:
		if e.WalletID == walletID {
			return e.Amount.Neg()
		}
	case CashFlowTransfer:
		if e.WalletID == walletID {
			return e.Amount.Neg()
		}
		if e.ToWalletID != nil && *e.ToWalletID == walletID {
			return e.Amount
		}
	}
	return decimal.Zero
}

// ProjectBalance replays the given ledger entries and returns the wallet's
// balance. Balances are never stored; this fold over the ledger is the only
// source of truth, so a balance can never go stale.
func ProjectBalance(entries []CashFlowEntry, walletID string) decimal.Decimal {
	balance := decimal.Zero
	for _, entry := range entries {
		balance = balance.Add(entry.SignedContribution(walletID))
	}
	return balance
}
