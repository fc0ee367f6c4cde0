package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/dto"
	"github.com/laquila/backend/internal/middleware"
)

var (
	ErrAmountNotPositive = errors.New("settlement amount must be positive")
	ErrNothingRemaining  = errors.New("order is already fully settled")
	ErrExceedsRemaining  = errors.New("settlement amount exceeds remaining balance")
	ErrOrderCancelled    = errors.New("cannot settle a cancelled order")
	ErrNotIncomeCategory = errors.New("settlement category must have income direction")
)

// settlementService coordinates the one write path that touches both sides
// of the books: the order's settled amount and the cash-flow ledger. The
// mutation itself happens in a single repository transaction; this service
// owns the precondition checks and their ordering.
type settlementService struct {
	orderRepo    portsrepo.OrderRepositoryFacade
	walletRepo   portsrepo.WalletRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	orderRepo portsrepo.OrderRepositoryFacade,
	walletRepo portsrepo.WalletRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		orderRepo:    orderRepo,
		walletRepo:   walletRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// RecordSettlement applies a payment against an order. Preconditions are
// checked in a fixed order: the order must exist and be active, the category
// must exist and carry income direction, the wallet must exist, the amount
// must be positive, and the order must have a positive remaining balance that
// the amount does not exceed. On success the order's settled amount, its
// payment status and the matching income ledger entry are committed in one
// transaction.
func (s *settlementService) RecordSettlement(ctx context.Context, req dto.RecordSettlementRequest) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, req.OrderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find order for settlement", slog.String("error", err.Error()), slog.String("order_id", req.OrderID))
		}
		return nil, fmt.Errorf("failed to find order %s: %w", req.OrderID, err)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find category for settlement", slog.String("error", err.Error()), slog.String("category_id", req.CategoryID))
		}
		return nil, fmt.Errorf("failed to find category %s: %w", req.CategoryID, err)
	}
	if category.Direction != domain.CategoryIncome {
		logger.Warn("Settlement category is not an income category", slog.String("category_id", req.CategoryID))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, ErrNotIncomeCategory.Error())
	}

	if _, err := s.walletRepo.FindWalletByID(ctx, req.WalletID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find wallet for settlement", slog.String("error", err.Error()), slog.String("wallet_id", req.WalletID))
		}
		return nil, fmt.Errorf("failed to find wallet %s: %w", req.WalletID, err)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	if order.OrderStatus == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrOrderCancelled)
	}
	remaining := order.Remaining()
	if !remaining.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNothingRemaining)
	}
	if req.Amount.GreaterThan(remaining) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrExceedsRemaining)
	}

	occurredAt := req.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	// The repository re-checks the remaining balance under a row lock, so a
	// concurrent settlement that slipped between our read and the transaction
	// still cannot overshoot the total.
	settled, err := s.orderRepo.SettleOrder(ctx, req.OrderID, req.Amount, req.WalletID, category.Name, occurredAt)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Settlement lost the race for the remaining balance", slog.String("order_id", req.OrderID))
		} else {
			logger.Error("Failed to record settlement", slog.String("error", err.Error()), slog.String("order_id", req.OrderID))
		}
		return nil, fmt.Errorf("failed to record settlement for order %s: %w", req.OrderID, err)
	}

	logger.Info("Settlement recorded",
		slog.String("order_id", settled.OrderID),
		slog.String("invoice_number", settled.InvoiceNumber),
		slog.String("amount", req.Amount.String()),
		slog.String("payment_status", string(settled.PaymentStatus)),
	)
	return settled, nil
}
