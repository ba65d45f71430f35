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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

const customerColumns = `id, name, phone, email, address, credit_limit, grace_period_days, is_active, notes, created_at`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Address, &m.CreditLimit,
		&m.GracePeriodDays, &m.IsActive, &m.Notes, &m.CreatedAt)
	return m, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PgxCustomerRepository) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (name, phone, email, address, credit_limit, grace_period_days, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
		RETURNING ` + customerColumns + `;
	`
	created, err := scanCustomer(r.Pool.QueryRow(ctx, query,
		m.Name, m.Phone, m.Email, m.Address, m.CreditLimit, m.GracePeriodDays, m.Notes))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to create customer", err)
	}
	d := mapping.ToDomainCustomer(created)
	return &d, nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find customer %d", customerID), err)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name;`
	return r.queryCustomers(ctx, query)
}

// SearchCustomers matches name or phone, case-insensitively.
func (r *PgxCustomerRepository) SearchCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%'
		ORDER BY name;
	`
	return r.queryCustomers(ctx, query, search)
}

func (r *PgxCustomerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]domain.Customer, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	return customers, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, address = $5, credit_limit = $6, grace_period_days = $7, notes = $8
		WHERE id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ID, m.Name, m.Phone, m.Email, m.Address, m.CreditLimit, m.GracePeriodDays, m.Notes)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update customer %d", customer.ID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, customerID int64) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE customers SET is_active = FALSE WHERE id = $1;`, customerID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to deactivate customer %d", customerID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
