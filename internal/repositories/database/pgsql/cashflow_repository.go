package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portsrepo "github.com/laquila/backend/internal/core/ports/repositories"
	"github.com/laquila/backend/internal/models"
	"github.com/laquila/backend/internal/utils/mapping"
	"github.com/laquila/backend/internal/utils/pagination"
)

const cashFlowColumns = `entry_id, entry_type, amount, category_name, wallet_id, to_wallet_id, order_id, description, occurred_at`

type PgxCashFlowRepository struct {
	BaseRepository
}

// newPgxCashFlowRepository creates a new repository for cash-flow ledger data.
func newPgxCashFlowRepository(pool *pgxpool.Pool) portsrepo.CashFlowRepositoryFacade {
	return &PgxCashFlowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashFlowRepositoryFacade = (*PgxCashFlowRepository)(nil)

// AppendEntry persists a new ledger row.
func (r *PgxCashFlowRepository) AppendEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	m := mapping.ToModelCashFlowEntry(entry)
	query := `
		INSERT INTO cashflow_entries (` + cashFlowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.Type,
		m.Amount,
		m.CategoryName,
		m.WalletID,
		m.ToWalletID,
		m.OrderID,
		m.Description,
		m.OccurredAt,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// UpdateEntry rewrites an existing ledger row. The entry type and order
// reference never change after the fact.
func (r *PgxCashFlowRepository) UpdateEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	m := mapping.ToModelCashFlowEntry(entry)
	query := `
		UPDATE cashflow_entries
		SET amount = $2, category_name = $3, wallet_id = $4, to_wallet_id = $5, description = $6, occurred_at = $7
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.Amount,
		m.CategoryName,
		m.WalletID,
		m.ToWalletID,
		m.Description,
		m.OccurredAt,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to update ledger entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ledger entry " + m.EntryID + " not found")
	}
	return nil
}

// DeleteEntry removes a ledger row.
func (r *PgxCashFlowRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM cashflow_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewStorageError("failed to delete ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ledger entry " + entryID + " not found")
	}
	return nil
}

// FindEntryByID retrieves a single ledger row.
func (r *PgxCashFlowRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error) {
	query := `
		SELECT ` + cashFlowColumns + `
		FROM cashflow_entries
		WHERE entry_id = $1;
	`
	var m models.CashFlowEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.Type,
		&m.Amount,
		&m.CategoryName,
		&m.WalletID,
		&m.ToWalletID,
		&m.OrderID,
		&m.Description,
		&m.OccurredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find ledger entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainCashFlowEntry(m)
	return &entry, nil
}

// ListEntries retrieves a filtered page of ledger entries using keyset
// pagination on (occurred_at, entry_id) descending.
func (r *PgxCashFlowRepository) ListEntries(ctx context.Context, filter portsrepo.CashFlowFilter) ([]domain.CashFlowEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + cashFlowColumns + `
		FROM cashflow_entries
	`
	whereClause := `WHERE 1=1`
	args := []interface{}{}

	if filter.Type != nil {
		args = append(args, models.CashFlowType(*filter.Type))
		whereClause += ` AND entry_type = $` + strconv.Itoa(len(args))
	}
	if filter.WalletID != nil {
		args = append(args, *filter.WalletID)
		n := strconv.Itoa(len(args))
		whereClause += ` AND (wallet_id = $` + n + ` OR to_wallet_id = $` + n + `)`
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		whereClause += ` AND category_name = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		whereClause += ` AND occurred_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		whereClause += ` AND occurred_at < $` + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		whereClause += ` AND (description ILIKE $` + n + ` OR category_name ILIKE $` + n + `)`
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastOccurredAt, lastEntryID, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastOccurredAt, lastEntryID)
		whereClause += ` AND (occurred_at, entry_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	orderByClause := `ORDER BY occurred_at DESC, entry_id DESC`
	args = append(args, fetchLimit)
	query := baseQuery + " " + whereClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to query ledger entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.CashFlowEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.CashFlowEntry
		err := rows.Scan(
			&m.EntryID,
			&m.Type,
			&m.Amount,
			&m.CategoryName,
			&m.WalletID,
			&m.ToWalletID,
			&m.OrderID,
			&m.Description,
			&m.OccurredAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan ledger entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("error iterating ledger entry rows", err)
	}

	var nextTokenVal *string
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.EntryID)
		nextTokenVal = &token
		modelEntries = modelEntries[:limit]
	}

	return mapping.ToDomainCashFlowEntrySlice(modelEntries), nextTokenVal, nil
}

// ListEntriesForWallet retrieves every entry touching the wallet, as source
// or transfer destination, optionally up to a cutoff. Ordered ascending so a
// replay reads like a statement.
func (r *PgxCashFlowRepository) ListEntriesForWallet(ctx context.Context, walletID string, asOf *time.Time) ([]domain.CashFlowEntry, error) {
	query := `
		SELECT ` + cashFlowColumns + `
		FROM cashflow_entries
		WHERE (wallet_id = $1 OR to_wallet_id = $1)
	`
	args := []interface{}{walletID}
	if asOf != nil {
		args = append(args, *asOf)
		query += ` AND occurred_at <= $2`
	}
	query += ` ORDER BY occurred_at ASC, entry_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query ledger entries for wallet "+walletID, err)
	}
	defer rows.Close()

	modelEntries := []models.CashFlowEntry{}
	for rows.Next() {
		var m models.CashFlowEntry
		err := rows.Scan(
			&m.EntryID,
			&m.Type,
			&m.Amount,
			&m.CategoryName,
			&m.WalletID,
			&m.ToWalletID,
			&m.OrderID,
			&m.Description,
			&m.OccurredAt,
		)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan ledger entry row for wallet "+walletID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating ledger entry rows for wallet "+walletID, err)
	}

	return mapping.ToDomainCashFlowEntrySlice(modelEntries), nil
}
