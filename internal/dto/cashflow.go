package dto

import (
	"time"

	"github.com/laquila/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashFlowEntryRequest defines the payload for a manually entered
// ledger row. The category is referenced by ID and denormalized to its name
// at append time.
type CreateCashFlowEntryRequest struct {
	Type        string          `json:"type" binding:"required,cashflowtype"`
	Amount      decimal.Decimal `json:"amount"`
	WalletID    string          `json:"walletID" binding:"required"`
	ToWalletID  *string         `json:"toWalletID"`
	CategoryID  *string         `json:"categoryID"`
	Description *string         `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// UpdateCashFlowEntryRequest defines partial updates for a manually entered
// ledger row. Settlement-originated entries are immutable and rejected.
type UpdateCashFlowEntryRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	WalletID    *string          `json:"walletID"`
	ToWalletID  *string          `json:"toWalletID"`
	CategoryID  *string          `json:"categoryID"`
	Description *string          `json:"description"`
	OccurredAt  *time.Time       `json:"occurredAt"`
}

// ListCashFlowParams holds query parameters for listing ledger entries.
type ListCashFlowParams struct {
	Type      *string    `form:"type"`
	WalletID  *string    `form:"walletID"`
	Category  *string    `form:"category"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Search    string     `form:"q"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// CashFlowEntryResponse defines the data returned for a ledger entry.
type CashFlowEntryResponse struct {
	EntryID      string          `json:"entryID"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryName *string         `json:"categoryName,omitempty"`
	WalletID     string          `json:"walletID"`
	ToWalletID   *string         `json:"toWalletID,omitempty"`
	OrderID      *string         `json:"orderID,omitempty"`
	Description  *string         `json:"description,omitempty"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

// ListCashFlowEntriesResponse is a page of entries plus the next cursor.
type ListCashFlowEntriesResponse struct {
	Entries   []CashFlowEntryResponse `json:"entries"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToCashFlowEntryResponse converts a domain.CashFlowEntry to its DTO.
func ToCashFlowEntryResponse(e *domain.CashFlowEntry) CashFlowEntryResponse {
	return CashFlowEntryResponse{
		EntryID:      e.EntryID,
		Type:         string(e.Type),
		Amount:       e.Amount,
		CategoryName: e.CategoryName,
		WalletID:     e.WalletID,
		ToWalletID:   e.ToWalletID,
		OrderID:      e.OrderID,
		Description:  e.Description,
		OccurredAt:   e.OccurredAt,
	}
}

// ToCashFlowEntryResponses converts a slice of entries to DTOs.
func ToCashFlowEntryResponses(entries []domain.CashFlowEntry) []CashFlowEntryResponse {
	responses := make([]CashFlowEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToCashFlowEntryResponse(&entries[i])
	}
	return responses
}
