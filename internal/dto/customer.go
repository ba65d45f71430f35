package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	Name            string           `json:"name" binding:"required"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email" binding:"omitempty,email"`
	Address         string           `json:"address"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	GracePeriodDays *int             `json:"gracePeriodDays"`
	Notes           string           `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name            string           `json:"name" binding:"required"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email" binding:"omitempty,email"`
	Address         string           `json:"address"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	GracePeriodDays *int             `json:"gracePeriodDays"`
	Notes           string           `json:"notes"`
}

type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Category       string          `json:"category"`
	IsPrescription bool            `json:"isPrescription"`
}

type UpdateProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Category       string          `json:"category"`
	IsPrescription bool            `json:"isPrescription"`
}
