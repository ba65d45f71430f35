package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/handlers"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/creditkeep/creditkeep/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) AddDebt(ctx context.Context, customerID int64, req dto.AddDebtRequest, actorID *int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) AddPayment(ctx context.Context, customerID int64, req dto.AddPaymentRequest, actorID *int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) AddAdjustment(ctx context.Context, customerID int64, req dto.AddAdjustmentRequest, actorID *int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) AddRefund(ctx context.Context, customerID int64, req dto.AddRefundRequest, actorID *int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) WriteOff(ctx context.Context, customerID int64, req dto.WriteOffRequest, actorID *int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) EditDebtEntry(ctx context.Context, entryID int64, req dto.EditDebtRequest) error {
	args := m.Called(ctx, entryID, req)
	return args.Error(0)
}
func (m *MockLedgerService) EditPaymentEntry(ctx context.Context, entryID int64, req dto.EditPaymentRequest) error {
	args := m.Called(ctx, entryID, req)
	return args.Error(0)
}
func (m *MockLedgerService) VoidEntry(ctx context.Context, entryID int64, reason string, actorID *int64) (bool, error) {
	args := m.Called(ctx, entryID, reason, actorID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLedgerService) UnvoidEntry(ctx context.Context, entryID int64, actorID *int64) (bool, error) {
	args := m.Called(ctx, entryID, actorID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLedgerService) DeleteEntry(ctx context.Context, entryID int64) (bool, error) {
	args := m.Called(ctx, entryID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLedgerService) GetBalance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) ListForCustomer(ctx context.Context, customerID int64, includeVoided bool) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, customerID, includeVoided)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) CheckCreditLimit(ctx context.Context, customerID int64, additional decimal.Decimal) (*domain.CreditCheck, error) {
	args := m.Called(ctx, customerID, additional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditCheck), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a signed JWT carrying the given user id and role.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID int64, role string) string {
	claims := middleware.AuthClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "creditkeep-test",
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{Ledger: suite.mockLedgerService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *LedgerHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestAddDebt_Success() {
	expected := &domain.LedgerEntry{
		ID:           7,
		CustomerID:   3,
		EntryType:    domain.EntryNewDebt,
		Amount:       decimal.RequireFromString("25.00"),
		BalanceAfter: decimal.RequireFromString("25.00"),
	}
	actorID := int64(12)
	suite.mockLedgerService.On("AddDebt",
		mock.Anything,
		int64(3),
		mock.MatchedBy(func(r dto.AddDebtRequest) bool { return len(r.Items) == 2 }),
		&actorID,
	).Return(expected, nil).Once()

	body := dto.AddDebtRequest{
		Items: []dto.ItemInput{
			{ProductName: "Amoxicillin", Price: decimal.RequireFromString("10.00"), Quantity: 2},
			{ProductName: "Syringe", Price: decimal.RequireFromString("5.00"), Quantity: 1},
		},
	}
	token := suite.generateTestToken(12, "clerk")
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/3/debts", token, body)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.LedgerEntry
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(int64(7), got.ID)
	suite.True(got.Amount.Equal(expected.Amount))
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestAddDebt_RequiresAuth() {
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/3/debts", "", dto.AddDebtRequest{})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "AddDebt")
}

func (suite *LedgerHandlerTestSuite) TestAddDebt_RejectsEmptyItems() {
	token := suite.generateTestToken(12, "clerk")
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/3/debts", token, dto.AddDebtRequest{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "AddDebt")
}

func (suite *LedgerHandlerTestSuite) TestAddPayment_OverpaymentMapsTo422() {
	suite.mockLedgerService.On("AddPayment",
		mock.Anything, int64(3), mock.Anything, mock.Anything,
	).Return(nil, fmt.Errorf("payment exceeds outstanding debt: %w", apperrors.ErrExceedsDebt)).Once()

	body := dto.AddPaymentRequest{Amount: decimal.RequireFromString("999.00")}
	token := suite.generateTestToken(12, "clerk")
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/3/payments", token, body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestWriteOff_ForbiddenForClerk() {
	body := dto.WriteOffRequest{Amount: decimal.RequireFromString("10.00"), Reason: "uncollectible"}
	token := suite.generateTestToken(12, "clerk")
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/3/writeoffs", token, body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "WriteOff")
}

func (suite *LedgerHandlerTestSuite) TestWriteOff_AllowedForManager() {
	expected := &domain.LedgerEntry{ID: 9, CustomerID: 3, EntryType: domain.EntryWriteOff, Amount: decimal.RequireFromString("10.00")}
	suite.mockLedgerService.On("WriteOff",
		mock.Anything, int64(3), mock.Anything, mock.Anything,
	).Return(expected, nil).Once()

	body := dto.WriteOffRequest{Amount: decimal.RequireFromString("10.00"), Reason: "uncollectible"}
	token := suite.generateTestToken(12, "manager")
	w := suite.doJSON(http.MethodPost, "/api/v1/customers/3/writeoffs", token, body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestVoidEntry_ReturnsChangedFlag() {
	suite.mockLedgerService.On("VoidEntry",
		mock.Anything, int64(7), "duplicate entry", mock.Anything,
	).Return(true, nil).Once()

	body := dto.VoidRequest{Reason: "duplicate entry"}
	token := suite.generateTestToken(12, "manager")
	w := suite.doJSON(http.MethodPost, "/api/v1/entries/7/void", token, body)

	suite.Equal(http.StatusOK, w.Code)
	var got map[string]bool
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got["voided"])
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_NotFound() {
	suite.mockLedgerService.On("GetBalance", mock.Anything, int64(404)).
		Return(decimal.Zero, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(12, "clerk")
	w := suite.doJSON(http.MethodGet, "/api/v1/customers/404/balance", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListLedger_PassesIncludeVoided() {
	suite.mockLedgerService.On("ListForCustomer", mock.Anything, int64(3), true).
		Return([]domain.LedgerEntry{}, nil).Once()

	token := suite.generateTestToken(12, "clerk")
	w := suite.doJSON(http.MethodGet, "/api/v1/customers/3/ledger?includeVoided=true", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeleteEntry_ForbiddenForClerk() {
	token := suite.generateTestToken(12, "clerk")
	w := suite.doJSON(http.MethodDelete, "/api/v1/entries/7", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "DeleteEntry")
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
