package mapping

import (
	"github.com/laquila/backend/internal/core/domain"
	"github.com/laquila/backend/internal/models"
)

// ToModelCashFlowEntry converts a domain CashFlowEntry to a model CashFlowEntry
func ToModelCashFlowEntry(d domain.CashFlowEntry) models.CashFlowEntry {
	return models.CashFlowEntry{
		EntryID:      d.EntryID,
		Type:         models.CashFlowType(d.Type),
		Amount:       d.Amount,
		CategoryName: d.CategoryName,
		WalletID:     d.WalletID,
		ToWalletID:   d.ToWalletID,
		OrderID:      d.OrderID,
		Description:  d.Description,
		OccurredAt:   d.OccurredAt,
	}
}

// ToDomainCashFlowEntry converts a model CashFlowEntry to a domain CashFlowEntry
func ToDomainCashFlowEntry(m models.CashFlowEntry) domain.CashFlowEntry {
	return domain.CashFlowEntry{
		EntryID:      m.EntryID,
		Type:         domain.CashFlowType(m.Type),
		Amount:       m.Amount,
		CategoryName: m.CategoryName,
		WalletID:     m.WalletID,
		ToWalletID:   m.ToWalletID,
		OrderID:      m.OrderID,
		Description:  m.Description,
		OccurredAt:   m.OccurredAt,
	}
}

// ToDomainCashFlowEntrySlice converts a slice of model CashFlowEntries.
func ToDomainCashFlowEntrySlice(ms []models.CashFlowEntry) []domain.CashFlowEntry {
	entries := make([]domain.CashFlowEntry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainCashFlowEntry(m)
	}
	return entries
}
