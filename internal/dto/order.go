package dto

import (
	"time"

	"github.com/laquila/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one line of an order create/update payload. Price and
// name are snapshots: a productID is carried along but never re-validated
// against the catalog afterwards.
type OrderItemInput struct {
	ProductID   *string         `json:"productID"`
	ProductName string          `json:"productName" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
	Variant     string          `json:"variant"`
}

// CreateOrderRequest defines the payload for creating an order with its
// items in one atomic write.
type CreateOrderRequest struct {
	Marketplace  string           `json:"marketplace"`
	CustomerName string           `json:"customerName" binding:"required"`
	City         string           `json:"city"`
	Address      string           `json:"address"`
	Phone        string           `json:"phone"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest defines partial-update semantics: nil header fields are
// left untouched, a supplied field replaces the stored value. When Items is
// supplied the entire item set is replaced atomically.
type UpdateOrderRequest struct {
	Marketplace  *string           `json:"marketplace"`
	CustomerName *string           `json:"customerName"`
	City         *string           `json:"city"`
	Address      *string           `json:"address"`
	Phone        *string           `json:"phone"`
	Items        *[]OrderItemInput `json:"items" binding:"omitempty,min=1,dive"`
}

// ListOrdersParams holds query parameters for listing orders.
type ListOrdersParams struct {
	Status    *string    `form:"status"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Search    string     `form:"q"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// OrderItemResponse defines the data returned for one order line.
type OrderItemResponse struct {
	ItemID      string          `json:"itemID"`
	ProductID   *string         `json:"productID,omitempty"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int64           `json:"quantity"`
	Variant     string          `json:"variant"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse defines the data returned for an order. Total and remaining
// are freshly computed from the items on every read.
type OrderResponse struct {
	OrderID       string              `json:"orderID"`
	InvoiceNumber string              `json:"invoiceNumber"`
	Marketplace   string              `json:"marketplace"`
	CustomerName  string              `json:"customerName"`
	City          string              `json:"city"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	OrderStatus   string              `json:"orderStatus"`
	PaymentStatus string              `json:"paymentStatus"`
	AmountSettled decimal.Decimal     `json:"amountSettled"`
	Total         decimal.Decimal     `json:"total"`
	Remaining     decimal.Decimal     `json:"remaining"`
	CreatedAt     time.Time           `json:"createdAt"`
	Items         []OrderItemResponse `json:"items"`
}

// ListOrdersResponse is a page of orders plus the cursor for the next page.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToOrderResponse converts a domain.Order to an OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ItemID:      item.ItemID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Variant:     item.Variant,
			Subtotal:    item.Subtotal(),
		}
	}
	return OrderResponse{
		OrderID:       o.OrderID,
		InvoiceNumber: o.InvoiceNumber,
		Marketplace:   o.Marketplace,
		CustomerName:  o.CustomerName,
		City:          o.City,
		Address:       o.Address,
		Phone:         o.Phone,
		OrderStatus:   string(o.OrderStatus),
		PaymentStatus: string(o.PaymentStatus),
		AmountSettled: o.AmountSettled,
		Total:         o.Total(),
		Remaining:     o.Remaining(),
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

// ToOrderResponses converts a slice of domain.Order to []OrderResponse.
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
