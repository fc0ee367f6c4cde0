package mapping

import (
	"github.com/laquila/backend/internal/core/domain"
	"github.com/laquila/backend/internal/models"
)

// ToModelOrder converts a domain Order to a model Order. The invoice period
// and sequence columns are filled by the repository, which owns numbering.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		InvoiceNumber: d.InvoiceNumber,
		Marketplace:   d.Marketplace,
		CustomerName:  d.CustomerName,
		City:          d.City,
		Address:       d.Address,
		Phone:         d.Phone,
		OrderStatus:   models.OrderStatus(d.OrderStatus),
		PaymentStatus: models.PaymentStatus(d.PaymentStatus),
		AmountSettled: d.AmountSettled,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainOrder converts a model Order to a domain Order (items attached
// separately).
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:       m.OrderID,
		InvoiceNumber: m.InvoiceNumber,
		Marketplace:   m.Marketplace,
		CustomerName:  m.CustomerName,
		City:          m.City,
		Address:       m.Address,
		Phone:         m.Phone,
		OrderStatus:   domain.OrderStatus(m.OrderStatus),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		AmountSettled: m.AmountSettled,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelOrderItem converts a domain OrderItem to a model OrderItem
func ToModelOrderItem(d domain.OrderItem) models.OrderItem {
	return models.OrderItem{
		ItemID:      d.ItemID,
		OrderID:     d.OrderID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		UnitPrice:   d.UnitPrice,
		Quantity:    d.Quantity,
		Variant:     d.Variant,
	}
}

// ToDomainOrderItem converts a model OrderItem to a domain OrderItem
func ToDomainOrderItem(m models.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ItemID:      m.ItemID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		Variant:     m.Variant,
	}
}

// ToDomainOrderItemSlice converts a slice of model OrderItems.
func ToDomainOrderItemSlice(ms []models.OrderItem) []domain.OrderItem {
	items := make([]domain.OrderItem, len(ms))
	for i, m := range ms {
		items[i] = ToDomainOrderItem(m)
	}
	return items
}
