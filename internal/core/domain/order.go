package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus indicates the lifecycle state of a sales order.
type OrderStatus string

const (
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCancelled OrderStatus = "Cancelled"
)

// PaymentStatus is derived from the order total and the amount settled so
// far. It is never stored independently of those two values.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentSettled PaymentStatus = "Settled"
)

// OrderItem is a single line of a sales order. The product reference is a
// frozen snapshot taken at entry time: name and unit price are copied, and
// ProductID is kept only as an informational pointer back to the catalog.
type OrderItem struct {
	ItemID      string          `json:"itemID"`
	OrderID     string          `json:"orderID"`
	ProductID   *string         `json:"productID,omitempty"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int64           `json:"quantity"`
	Variant     string          `json:"variant"`
}

// Subtotal returns unit price times quantity for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is a sales order with its owned item set. AmountSettled is mutated
// only by the settlement coordinator and never decreases.
type Order struct {
	OrderID       string          `json:"orderID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Marketplace   string          `json:"marketplace"`
	CustomerName  string          `json:"customerName"`
	City          string          `json:"city"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	OrderStatus   OrderStatus     `json:"orderStatus"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	AmountSettled decimal.Decimal `json:"amountSettled"`
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []OrderItem     `json:"items"`
}

// Total is always computed from the item set, never cached, so it cannot
// drift from the items.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Remaining returns the unsettled part of the order total.
func (o Order) Remaining() decimal.Decimal {
	return o.Total().Sub(o.AmountSettled)
}

// ResolvePaymentStatus maps (total, amountSettled) to a payment status.
//
// A zero-total order with nothing settled resolves to Pending, not Settled:
// an order with no monetary value must never auto-complete.
func ResolvePaymentStatus(total, amountSettled decimal.Decimal) PaymentStatus {
	if total.IsPositive() && amountSettled.GreaterThanOrEqual(total) {
		return PaymentSettled
	}
	if amountSettled.IsPositive() {
		return PaymentPartial
	}
	return PaymentPending
}
