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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for catalog product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// SaveProduct upserts a product row. Used by the seeder.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (product_id, name, sku, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE SET name = EXCLUDED.name, sku = EXCLUDED.sku, unit_price = EXCLUDED.unit_price;
	`
	if _, err := r.Pool.Exec(ctx, query, m.ProductID, m.Name, m.SKU, m.UnitPrice, m.CreatedAt); err != nil {
		return apperrors.NewStorageError("failed to save product "+m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT product_id, name, sku, unit_price, created_at FROM products WHERE product_id = $1;`
	var m models.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(&m.ProductID, &m.Name, &m.SKU, &m.UnitPrice, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError("failed to find product by ID "+productID, err)
	}
	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// ListProducts retrieves all products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, `SELECT product_id, name, sku, unit_price, created_at FROM products ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var m models.Product
		if err := rows.Scan(&m.ProductID, &m.Name, &m.SKU, &m.UnitPrice, &m.CreatedAt); err != nil {
			return nil, apperrors.NewStorageError("failed to scan product row", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating product rows", err)
	}
	return products, nil
}
