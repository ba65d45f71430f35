package services

import (
	"context"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/creditkeep/creditkeep/internal/dto"
)

// CustomerSvcFacade manages customer accounts.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, req dto.UpdateCustomerRequest) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, customerID int64) error
}

// ProductSvcFacade manages the product catalog.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

// UserSvcFacade manages staff accounts.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, newPassword string) error
}

// AuthSvcFacade authenticates staff and issues tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
}
