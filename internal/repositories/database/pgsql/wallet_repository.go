package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	"github.com/laquila/backend/internal/models"
	"github.com/laquila/backend/internal/utils/mapping"
)

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet reference data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

// SaveWallet upserts a wallet row. Used by the seeder.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	query := `
		INSERT INTO wallets (wallet_id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_id) DO UPDATE SET name = EXCLUDED.name;
	`
	if _, err := r.Pool.Exec(ctx, query, m.WalletID, m.Name, m.CreatedAt); err != nil {
		return apperrors.NewStorageError("failed to save wallet "+m.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its ID.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT wallet_id, name, created_at FROM wallets WHERE wallet_id = $1;`
	var m models.Wallet
	err := r.Pool.QueryRow(ctx, query, walletID).Scan(&m.WalletID, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find wallet by ID "+walletID, err)
	}
	wallet := mapping.ToDomainWallet(m)
	return &wallet, nil
}

// ListWallets retrieves all wallets ordered by name.
func (r *PgxWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	rows, err := r.Pool.Query(ctx, `SELECT wallet_id, name, created_at FROM wallets ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query wallets", err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		var m models.Wallet
		if err := rows.Scan(&m.WalletID, &m.Name, &m.CreatedAt); err != nil {
			return nil, apperrors.NewStorageError("failed to scan wallet row", err)
		}
		wallets = append(wallets, mapping.ToDomainWallet(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating wallet rows", err)
	}
	return wallets, nil
}
