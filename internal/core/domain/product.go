package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is catalog master data, consumed only to prefill an order line's
// name and price at entry time. Order items keep their own copy afterwards.
type Product struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}
