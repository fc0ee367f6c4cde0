package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowType mirrors the entry_type column.
type CashFlowType string

const (
	CashFlowIncome   CashFlowType = "income"
	CashFlowExpense  CashFlowType = "expense"
	CashFlowTransfer CashFlowType = "transfer"
)

// CashFlowEntry mirrors a row of the cashflow_entries table.
type CashFlowEntry struct {
	EntryID      string
	Type         CashFlowType
	Amount       decimal.Decimal
	CategoryName *string
	WalletID     string
	ToWalletID   *string
	OrderID      *string
	Description  *string
	OccurredAt   time.Time
}
