package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/middleware"
)

// walletService serves wallet reference data and projects balances. A wallet
// balance is never stored; every read replays the ledger entries that touch
// the wallet.
type walletService struct {
	walletRepo   portsrepo.WalletRepositoryFacade
	cashFlowRepo portsrepo.CashFlowRepositoryFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, cashFlowRepo portsrepo.CashFlowRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{walletRepo: walletRepo, cashFlowRepo: cashFlowRepo}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet %s: %w", walletID, err)
	}
	return wallet, nil
}

func (s *walletService) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

// BalanceOf replays every ledger entry touching the wallet, optionally up to
// a cutoff timestamp, and folds them into the current balance.
func (s *walletService) BalanceOf(ctx context.Context, walletID string, asOf *time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.walletRepo.FindWalletByID(ctx, walletID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to find wallet %s: %w", walletID, err)
	}

	entries, err := s.cashFlowRepo.ListEntriesForWallet(ctx, walletID, asOf)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load ledger entries for balance projection", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
		}
		return decimal.Zero, fmt.Errorf("failed to load ledger entries for wallet %s: %w", walletID, err)
	}

	return domain.ProjectBalance(entries, walletID), nil
}
