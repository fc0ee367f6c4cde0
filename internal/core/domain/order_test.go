package domain_test

import (
	"testing"

	"github.com/laquila/backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolvePaymentStatus(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		amountSettled int64
		want          domain.PaymentStatus
	}{
		{name: "nothing settled", total: 130000, amountSettled: 0, want: domain.PaymentPending},
		{name: "partially settled", total: 130000, amountSettled: 50000, want: domain.PaymentPartial},
		{name: "exactly settled", total: 130000, amountSettled: 130000, want: domain.PaymentSettled},
		{name: "over settled", total: 130000, amountSettled: 150000, want: domain.PaymentSettled},
		{name: "zero total stays pending", total: 0, amountSettled: 0, want: domain.PaymentPending},
		{name: "zero total with payment is partial", total: 0, amountSettled: 100, want: domain.PaymentPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolvePaymentStatus(decimal.NewFromInt(tt.total), decimal.NewFromInt(tt.amountSettled))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Increasing amountSettled for a fixed total must never move the status
// backward (Pending -> Partial -> Settled is one-way).
func TestResolvePaymentStatus_MonotonicInAmountSettled(t *testing.T) {
	rank := map[domain.PaymentStatus]int{
		domain.PaymentPending: 0,
		domain.PaymentPartial: 1,
		domain.PaymentSettled: 2,
	}

	total := decimal.NewFromInt(130000)
	prev := domain.ResolvePaymentStatus(total, decimal.Zero)
	for paid := int64(0); paid <= 150000; paid += 10000 {
		status := domain.ResolvePaymentStatus(total, decimal.NewFromInt(paid))
		assert.GreaterOrEqual(t, rank[status], rank[prev], "status moved backward at paid=%d", paid)
		prev = status
	}
}

func TestOrderTotal(t *testing.T) {
	order := domain.Order{
		Items: []domain.OrderItem{
			{ProductName: "Alpha", UnitPrice: decimal.NewFromInt(50000), Quantity: 2},
			{ProductName: "Beta", UnitPrice: decimal.NewFromInt(30000), Quantity: 1},
		},
	}

	assert.True(t, order.Total().Equal(decimal.NewFromInt(130000)))

	order.AmountSettled = decimal.NewFromInt(50000)
	assert.True(t, order.Remaining().Equal(decimal.NewFromInt(80000)))
}

func TestOrderTotal_NoItems(t *testing.T) {
	var order domain.Order
	assert.True(t, order.Total().IsZero())
}
