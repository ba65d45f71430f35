package repositories

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
)

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	// DeactivateCustomer flips the active flag off. The customer stays in
	// balance calculations and reports.
	DeactivateCustomer(ctx context.Context, customerID int64) error
}

// ProductRepository is the persistence port for the product catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID int64) error
}
