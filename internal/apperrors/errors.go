package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidAmount indicates a non-positive or otherwise unusable monetary value.
var ErrInvalidAmount = errors.New("amount must be a positive value")

// ErrInactiveCustomer indicates a write attempted against a deactivated customer.
var ErrInactiveCustomer = errors.New("customer is deactivated")

// ErrExceedsDebt indicates a payment or donation larger than the customer's outstanding balance.
var ErrExceedsDebt = errors.New("amount exceeds the customer's outstanding balance")

// ErrInsufficientFunds indicates a donation usage larger than the donation's remaining pool.
var ErrInsufficientFunds = errors.New("amount exceeds the donation's remaining funds")

// ErrExceedsCreditLimit indicates a debt that would push the customer past
// their credit limit. Advisory only; writes are not blocked on it.
var ErrExceedsCreditLimit = errors.New("amount exceeds the customer's credit limit")

// AppError wraps a lower-level error with a status code and a message suitable
// for surfacing at the handler boundary.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
