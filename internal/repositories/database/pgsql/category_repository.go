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

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for finance category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// SaveCategory upserts a finance category row. Used by the seeder.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.FinanceCategory) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO finance_categories (category_id, name, direction, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category_id) DO UPDATE SET name = EXCLUDED.name, direction = EXCLUDED.direction;
	`
	if _, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.Direction, m.CreatedAt); err != nil {
		return apperrors.NewStorageError("failed to save category "+m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a finance category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.FinanceCategory, error) {
	query := `SELECT category_id, name, direction, created_at FROM finance_categories WHERE category_id = $1;`
	var m models.FinanceCategory
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.Name, &m.Direction, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find category by ID "+categoryID, err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves all finance categories ordered by direction then
// name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.FinanceCategory, error) {
	rows, err := r.Pool.Query(ctx, `SELECT category_id, name, direction, created_at FROM finance_categories ORDER BY direction, name;`)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query categories", err)
	}
	defer rows.Close()

	categories := []domain.FinanceCategory{}
	for rows.Next() {
		var m models.FinanceCategory
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Direction, &m.CreatedAt); err != nil {
			return nil, apperrors.NewStorageError("failed to scan category row", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating category rows", err)
	}
	return categories, nil
}
