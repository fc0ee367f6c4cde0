package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus mirrors the order_status column.
type OrderStatus string

const (
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCancelled OrderStatus = "Cancelled"
)

// PaymentStatus mirrors the payment_status column.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentSettled PaymentStatus = "Settled"
)

// Order mirrors a row of the orders table. The invoice period and sequence
// are stored alongside the rendered invoice number to make the per-period
// uniqueness constraint and MAX(seq) lookup cheap.
type Order struct {
	OrderID       string
	InvoiceNumber string
	InvoicePeriod string
	InvoiceSeq    int64
	Marketplace   string
	CustomerName  string
	City          string
	Address       string
	Phone         string
	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
	AmountSettled decimal.Decimal
	CreatedAt     time.Time
}

// OrderItem mirrors a row of the order_items table.
type OrderItem struct {
	ItemID      string
	OrderID     string
	ProductID   *string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
	Variant     string
}
