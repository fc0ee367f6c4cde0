package repositories

import (
	"context"
	"time"

	"github.com/laquila/backend/internal/core/domain"
)

// CashFlowFilter narrows ListEntries. Nil fields are ignored. Search does a
// free-text match on description and category name.
type CashFlowFilter struct {
	Type      *domain.CashFlowType
	WalletID  *string
	Category  *string
	From      *time.Time
	To        *time.Time
	Search    string
	Limit     int
	NextToken *string
}

// CashFlowReader defines read operations over the append-only ledger.
type CashFlowReader interface {
	// FindEntryByID retrieves a single ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error)

	// ListEntries retrieves a filtered, cursor-paginated list of entries.
	ListEntries(ctx context.Context, filter CashFlowFilter) ([]domain.CashFlowEntry, *string, error)

	// ListEntriesForWallet retrieves every entry referencing the wallet as
	// source or transfer destination, optionally up to a cutoff timestamp.
	// This is the replay input for balance projection.
	ListEntriesForWallet(ctx context.Context, walletID string, asOf *time.Time) ([]domain.CashFlowEntry, error)
}

// CashFlowWriter defines write operations for manually entered ledger rows.
// Settlement-originated entries are written only by the order repository's
// settlement transaction and are never passed through this interface.
type CashFlowWriter interface {
	// AppendEntry persists a new ledger entry.
	AppendEntry(ctx context.Context, entry domain.CashFlowEntry) error

	// UpdateEntry rewrites a manually entered ledger entry.
	UpdateEntry(ctx context.Context, entry domain.CashFlowEntry) error

	// DeleteEntry removes a manually entered ledger entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// CashFlowRepositoryFacade combines all cash-flow repository interfaces.
type CashFlowRepositoryFacade interface {
	CashFlowReader
	CashFlowWriter
}
