package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	"github.com/creditkeep/creditkeep/internal/models"
	"github.com/creditkeep/creditkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

const productColumns = `id, name, price, category, is_prescription, created_at`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.IsPrescription, &m.CreatedAt)
	return m, err
}

func (r *PgxProductRepository) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (name, price, category, is_prescription)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns + `;
	`
	created, err := scanProduct(r.Pool.QueryRow(ctx, query, m.Name, m.Price, m.Category, m.IsPrescription))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to create product", err)
	}
	d := mapping.ToDomainProduct(created)
	return &d, nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find product %d", productID), err)
	}
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return products, nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `UPDATE products SET name = $2, price = $3, category = $4, is_prescription = $5 WHERE id = $1;`
	tag, err := r.Pool.Exec(ctx, query, m.ID, m.Name, m.Price, m.Category, m.IsPrescription)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update product %d", product.ID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a catalog row. Ledger items keep their own copy of
// name and price, so history is unaffected.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1;`, productID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete product %d", productID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
