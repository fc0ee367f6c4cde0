package domain

import "time"

// CategoryDirection tells whether a finance category classifies incoming or
// outgoing money.
type CategoryDirection string

const (
	CategoryIncome  CategoryDirection = "income"
	CategoryExpense CategoryDirection = "expense"
)

// FinanceCategory labels income/expense ledger entries. Ledger rows copy the
// category name instead of referencing it, so categories can be renamed or
// removed without invalidating history.
type FinanceCategory struct {
	CategoryID string            `json:"categoryID"`
	Name       string            `json:"name"`
	Direction  CategoryDirection `json:"direction"`
	CreatedAt  time.Time         `json:"createdAt"`
}
