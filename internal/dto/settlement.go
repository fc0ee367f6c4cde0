package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSettlementRequest defines the payload for applying a payment against
// an order. Amount positivity and the remaining-balance cap are enforced by
// the settlement coordinator, not by binding.
type RecordSettlementRequest struct {
	OrderID    string          `json:"orderID" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	WalletID   string          `json:"walletID" binding:"required"`
	CategoryID string          `json:"categoryID" binding:"required"`
	Timestamp  time.Time       `json:"timestamp"`
}
