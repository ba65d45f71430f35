package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/creditkeep/creditkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepository
	customerRepo portsrepo.CustomerRepository
}

// NewLedgerService creates the core ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, customerRepo portsrepo.CustomerRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, customerRepo: customerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// activeCustomer fetches the customer and rejects inactive accounts for new
// financial events.
func (s *ledgerService) activeCustomer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, apperrors.ErrInactiveCustomer
	}
	return customer, nil
}

func (s *ledgerService) AddDebt(ctx context.Context, customerID int64, req dto.AddDebtRequest, actorID *int64) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.activeCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	items := dto.ToDomainItems(req.Items)
	amount, err := accounting.ItemsTotal(items)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now()
	if req.DebtDate != "" {
		// Backdated debts keep today's time-of-day on the requested date so
		// same-day ordering stays stable.
		day, err := time.ParseInLocation("2006-01-02", req.DebtDate, time.Local)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid debt date", errors.Join(apperrors.ErrValidation, err))
		}
		createdAt = time.Date(day.Year(), day.Month(), day.Day(),
			createdAt.Hour(), createdAt.Minute(), createdAt.Second(), createdAt.Nanosecond(), time.Local)
	}

	entry := domain.LedgerEntry{
		CustomerID:  customerID,
		EntryType:   domain.EntryNewDebt,
		Amount:      amount,
		RxNumber:    req.RxNumber,
		Description: req.Description,
		Notes:       req.Notes,
		CreatedBy:   actorID,
		CreatedAt:   createdAt,
	}
	created, err := s.ledgerRepo.AppendEntry(ctx, entry, items)
	if err != nil {
		logger.Error("Failed to append debt entry", slog.String("error", err.Error()), slog.Int64("customer_id", customerID))
		return nil, err
	}
	logger.Info("Debt added", slog.Int64("entry_id", created.ID), slog.Int64("customer_id", customerID), slog.String("amount", amount.StringFixed(2)))
	return created, nil
}

func (s *ledgerService) AddPayment(ctx context.Context, customerID int64, req dto.AddPaymentRequest, actorID *int64) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.activeCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	balance, err := s.ledgerRepo.Balance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if balance.LessThanOrEqual(decimal.Zero) || req.Amount.GreaterThan(balance) {
		return nil, apperrors.ErrExceedsDebt
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = domain.PayCash
	}

	entry := domain.LedgerEntry{
		CustomerID:    customerID,
		EntryType:     domain.EntryPayment,
		Amount:        req.Amount,
		Notes:         req.Notes,
		PaymentMethod: method,
		CreatedBy:     actorID,
		CreatedAt:     time.Now(),
	}
	created, err := s.ledgerRepo.AppendEntry(ctx, entry, nil)
	if err != nil {
		logger.Error("Failed to append payment entry", slog.String("error", err.Error()), slog.Int64("customer_id", customerID))
		return nil, err
	}
	logger.Info("Payment recorded", slog.Int64("entry_id", created.ID), slog.Int64("customer_id", customerID), slog.String("amount", req.Amount.StringFixed(2)))
	return created, nil
}

func (s *ledgerService) AddAdjustment(ctx context.Context, customerID int64, req dto.AddAdjustmentRequest, actorID *int64) (*domain.LedgerEntry, error) {
	return s.addCorrection(ctx, customerID, domain.EntryAdjustment, req.Amount, req.Reason, req.ReferenceID, actorID)
}

func (s *ledgerService) AddRefund(ctx context.Context, customerID int64, req dto.AddRefundRequest, actorID *int64) (*domain.LedgerEntry, error) {
	return s.addCorrection(ctx, customerID, domain.EntryRefund, req.Amount, req.Reason, req.ReferenceID, actorID)
}

func (s *ledgerService) WriteOff(ctx context.Context, customerID int64, req dto.WriteOffRequest, actorID *int64) (*domain.LedgerEntry, error) {
	return s.addCorrection(ctx, customerID, domain.EntryWriteOff, req.Amount, req.Reason, nil, actorID)
}

// addCorrection is the shared path for adjustments, refunds and write-offs.
// The amount is always positive; the entry type decides the sign. Unlike
// debts and payments, corrections are accepted for deactivated customers:
// writing off a closed account's debt is how its books get settled.
func (s *ledgerService) addCorrection(ctx context.Context, customerID int64, entryType domain.EntryType, amount decimal.Decimal, reason string, referenceID *int64, actorID *int64) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	entry := domain.LedgerEntry{
		CustomerID:  customerID,
		EntryType:   entryType,
		Amount:      amount,
		Notes:       reason,
		ReferenceID: referenceID,
		CreatedBy:   actorID,
		CreatedAt:   time.Now(),
	}
	created, err := s.ledgerRepo.AppendEntry(ctx, entry, nil)
	if err != nil {
		logger.Error("Failed to append correction entry", slog.String("error", err.Error()),
			slog.String("entry_type", string(entryType)), slog.Int64("customer_id", customerID))
		return nil, err
	}
	logger.Info("Correction recorded", slog.Int64("entry_id", created.ID),
		slog.String("entry_type", string(entryType)), slog.String("amount", amount.StringFixed(2)))
	return created, nil
}

func (s *ledgerService) EditDebtEntry(ctx context.Context, entryID int64, req dto.EditDebtRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.EntryType != domain.EntryNewDebt {
		return apperrors.NewAppError(400, fmt.Sprintf("entry %d is not a debt", entryID), apperrors.ErrValidation)
	}

	items := dto.ToDomainItems(req.Items)
	amount, err := accounting.ItemsTotal(items)
	if err != nil {
		return err
	}

	if err := s.ledgerRepo.UpdateEntry(ctx, entryID, amount, req.Notes, items); err != nil {
		logger.Error("Failed to edit debt entry", slog.String("error", err.Error()), slog.Int64("entry_id", entryID))
		return err
	}
	logger.Info("Debt entry edited", slog.Int64("entry_id", entryID), slog.String("amount", amount.StringFixed(2)))
	return nil
}

func (s *ledgerService) EditPaymentEntry(ctx context.Context, entryID int64, req dto.EditPaymentRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.EntryType != domain.EntryPayment {
		return apperrors.NewAppError(400, fmt.Sprintf("entry %d is not a payment", entryID), apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}

	if err := s.ledgerRepo.UpdateEntry(ctx, entryID, req.Amount, req.Notes, nil); err != nil {
		logger.Error("Failed to edit payment entry", slog.String("error", err.Error()), slog.Int64("entry_id", entryID))
		return err
	}
	logger.Info("Payment entry edited", slog.Int64("entry_id", entryID), slog.String("amount", req.Amount.StringFixed(2)))
	return nil
}

func (s *ledgerService) VoidEntry(ctx context.Context, entryID int64, reason string, actorID *int64) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.ledgerRepo.FindEntryByID(ctx, entryID); err != nil {
		return false, err
	}
	voided, err := s.ledgerRepo.SetVoided(ctx, entryID, reason, actorID)
	if err != nil {
		logger.Error("Failed to void entry", slog.String("error", err.Error()), slog.Int64("entry_id", entryID))
		return false, err
	}
	if voided {
		logger.Info("Entry voided", slog.Int64("entry_id", entryID), slog.String("reason", reason))
	}
	return voided, nil
}

func (s *ledgerService) UnvoidEntry(ctx context.Context, entryID int64, actorID *int64) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.ledgerRepo.FindEntryByID(ctx, entryID); err != nil {
		return false, err
	}
	restored, err := s.ledgerRepo.SetUnvoided(ctx, entryID, actorID)
	if err != nil {
		logger.Error("Failed to unvoid entry", slog.String("error", err.Error()), slog.Int64("entry_id", entryID))
		return false, err
	}
	if restored {
		logger.Info("Entry restored", slog.Int64("entry_id", entryID))
	}
	return restored, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, entryID int64) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.ledgerRepo.FindEntryByID(ctx, entryID); err != nil {
		return false, err
	}
	deleted, err := s.ledgerRepo.SetDeleted(ctx, entryID)
	if err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.Int64("entry_id", entryID))
		return false, err
	}
	if deleted {
		logger.Info("Entry soft-deleted", slog.Int64("entry_id", entryID))
	}
	return deleted, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return decimal.Zero, err
	}
	return s.ledgerRepo.Balance(ctx, customerID)
}

func (s *ledgerService) ListForCustomer(ctx context.Context, customerID int64, includeVoided bool) ([]domain.LedgerEntry, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListEntriesForCustomer(ctx, customerID, includeVoided)
}

// CheckCreditLimit is advisory: it reports whether a prospective debt would
// push the customer past their limit but never blocks the write.
func (s *ledgerService) CheckCreditLimit(ctx context.Context, customerID int64, additional decimal.Decimal) (*domain.CreditCheck, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledgerRepo.Balance(ctx, customerID)
	if err != nil {
		return nil, err
	}

	check := &domain.CreditCheck{
		CurrentBalance:  balance,
		CreditLimit:     customer.CreditLimit,
		RequestedAmount: additional,
	}
	projected := balance.Add(additional)

	if customer.CreditLimit.LessThanOrEqual(decimal.Zero) {
		// No limit configured.
		check.Allowed = true
		check.Available = decimal.Zero
		check.Message = "No credit limit set"
		return check, nil
	}

	check.Available = customer.CreditLimit.Sub(balance)
	if check.Available.IsNegative() {
		check.Available = decimal.Zero
	}
	check.Percentage = projected.Div(customer.CreditLimit).Mul(decimal.NewFromInt(100)).Round(1)

	if projected.GreaterThan(customer.CreditLimit) {
		check.OverBy = projected.Sub(customer.CreditLimit)
		check.Message = fmt.Sprintf("Would exceed credit limit by %s", check.OverBy.StringFixed(2))
		return check, nil
	}
	check.Allowed = true
	check.Message = "Within credit limit"
	return check, nil
}
