package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/dto"
	"github.com/laquila/backend/internal/middleware"
)

var (
	ErrEntryAmountNotPositive = errors.New("entry amount must be positive")
	ErrCategoryRequired       = errors.New("income and expense entries require a category")
	ErrCategoryOnTransfer     = errors.New("transfer entries cannot carry a category")
	ErrTransferDestRequired   = errors.New("transfer entries require a destination wallet")
	ErrTransferSameWallet     = errors.New("transfer destination must differ from the source wallet")
	ErrDestOnNonTransfer      = errors.New("only transfer entries may carry a destination wallet")
	ErrDirectionMismatch      = errors.New("category direction does not match entry type")
	ErrSettlementEntry        = errors.New("settlement-originated entries are immutable")
	ErrUnknownEntryType       = errors.New("unknown cash flow type")
)

// cashFlowService guards the manual write path of the ledger. Rows written by
// the settlement transaction carry an order reference and are immutable here.
type cashFlowService struct {
	cashFlowRepo portsrepo.CashFlowRepositoryFacade
	walletRepo   portsrepo.WalletRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCashFlowService creates a new CashFlowService.
func NewCashFlowService(
	cashFlowRepo portsrepo.CashFlowRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
) portssvc.CashFlowSvcFacade {
	return &cashFlowService{
		cashFlowRepo: cashFlowRepo,
		walletRepo:   walletRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CashFlowSvcFacade = (*cashFlowService)(nil)

// validateEntry enforces the shape invariants of a ledger row and returns the
// denormalized category name for income and expense entries.
func (s *cashFlowService) validateEntry(ctx context.Context, entry *domain.CashFlowEntry, categoryID *string) error {
	if !entry.Amount.IsPositive() {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryAmountNotPositive)
	}

	if _, err := s.walletRepo.FindWalletByID(ctx, entry.WalletID); err != nil {
		return fmt.Errorf("failed to find wallet %s: %w", entry.WalletID, err)
	}

	switch entry.Type {
	case domain.CashFlowTransfer:
		if categoryID != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrCategoryOnTransfer)
		}
		if entry.ToWalletID == nil {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrTransferDestRequired)
		}
		if *entry.ToWalletID == entry.WalletID {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrTransferSameWallet)
		}
		if _, err := s.walletRepo.FindWalletByID(ctx, *entry.ToWalletID); err != nil {
			return fmt.Errorf("failed to find destination wallet %s: %w", *entry.ToWalletID, err)
		}
		entry.CategoryName = nil
	case domain.CashFlowIncome, domain.CashFlowExpense:
		if entry.ToWalletID != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDestOnNonTransfer)
		}
		if categoryID == nil {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrCategoryRequired)
		}
		category, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
		if err != nil {
			return fmt.Errorf("failed to find category %s: %w", *categoryID, err)
		}
		if (entry.Type == domain.CashFlowIncome && category.Direction != domain.CategoryIncome) ||
			(entry.Type == domain.CashFlowExpense && category.Direction != domain.CategoryExpense) {
			return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDirectionMismatch)
		}
		entry.CategoryName = &category.Name
	default:
		return fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownEntryType, entry.Type)
	}
	return nil
}

// AppendManualEntry validates and persists a manually entered ledger row.
func (s *cashFlowService) AppendManualEntry(ctx context.Context, req dto.CreateCashFlowEntryRequest) (*domain.CashFlowEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	entry := domain.CashFlowEntry{
		EntryID:     uuid.NewString(),
		Type:        domain.CashFlowType(req.Type),
		Amount:      req.Amount,
		WalletID:    req.WalletID,
		ToWalletID:  req.ToWalletID,
		Description: req.Description,
		OccurredAt:  occurredAt,
	}

	if err := s.validateEntry(ctx, &entry, req.CategoryID); err != nil {
		return nil, err
	}

	if err := s.cashFlowRepo.AppendEntry(ctx, entry); err != nil {
		logger.Error("Failed to append ledger entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	logger.Info("Ledger entry appended",
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.Type)),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

// UpdateManualEntry rewrites a manually entered ledger row. Type changes are
// not supported; the entry keeps its original type and is revalidated with
// the updated fields.
func (s *cashFlowService) UpdateManualEntry(ctx context.Context, entryID string, req dto.UpdateCashFlowEntryRequest) (*domain.CashFlowEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.cashFlowRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find ledger entry for update", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	if entry.OrderID != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrSettlementEntry)
	}

	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.WalletID != nil {
		entry.WalletID = *req.WalletID
	}
	if req.ToWalletID != nil {
		entry.ToWalletID = req.ToWalletID
	}
	if req.Description != nil {
		entry.Description = req.Description
	}
	if req.OccurredAt != nil {
		entry.OccurredAt = *req.OccurredAt
	}

	// Income and expense rows must always end up with a category: either the
	// caller supplies a new ID, or the stored denormalized name stands in for
	// the original one during revalidation.
	categoryID := req.CategoryID
	if categoryID == nil && entry.Type != domain.CashFlowTransfer && entry.CategoryName != nil {
		if !entry.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryAmountNotPositive)
		}
		if entry.ToWalletID != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDestOnNonTransfer)
		}
		if _, err := s.walletRepo.FindWalletByID(ctx, entry.WalletID); err != nil {
			return nil, fmt.Errorf("failed to find wallet %s: %w", entry.WalletID, err)
		}
	} else if err := s.validateEntry(ctx, entry, categoryID); err != nil {
		return nil, err
	}

	if err := s.cashFlowRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update ledger entry %s: %w", entryID, err)
	}

	logger.Info("Ledger entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteManualEntry removes a manually entered ledger row. Rows written by a
// settlement are rejected with a conflict.
func (s *cashFlowService) DeleteManualEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.cashFlowRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find ledger entry for delete", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	if entry.OrderID != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrSettlementEntry)
	}

	if err := s.cashFlowRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}

	logger.Info("Ledger entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ListEntries retrieves a filtered, cursor-paginated page of ledger entries.
func (s *cashFlowService) ListEntries(ctx context.Context, params dto.ListCashFlowParams) (*dto.ListCashFlowEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.CashFlowFilter{
		WalletID:  params.WalletID,
		Category:  params.Category,
		From:      params.From,
		To:        params.To,
		Search:    params.Search,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Type != nil {
		switch entryType := domain.CashFlowType(*params.Type); entryType {
		case domain.CashFlowIncome, domain.CashFlowExpense, domain.CashFlowTransfer:
			filter.Type = &entryType
		default:
			return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrUnknownEntryType, *params.Type)
		}
	}

	entries, nextToken, err := s.cashFlowRepo.ListEntries(ctx, filter)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListCashFlowEntriesResponse{
		Entries:   dto.ToCashFlowEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
