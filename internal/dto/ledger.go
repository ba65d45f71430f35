package dto

import (
	"github.com/creditkeep/creditkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ItemInput is one raw product line supplied by the caller; the core prices
// and sums it.
type ItemInput struct {
	ProductName string          `json:"productName" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int             `json:"quantity"`
	RxNumber    string          `json:"rxNumber"`
}

// ToDomainItems converts raw item inputs into ledger items, defaulting
// quantity to 1 as the original intake form does.
func ToDomainItems(inputs []ItemInput) []domain.LedgerItem {
	items := make([]domain.LedgerItem, len(inputs))
	for i, in := range inputs {
		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}
		items[i] = domain.LedgerItem{
			ProductName: in.ProductName,
			Price:       in.Price,
			Quantity:    qty,
			RxNumber:    in.RxNumber,
		}
	}
	return items
}

type AddDebtRequest struct {
	Items       []ItemInput `json:"items" binding:"required,min=1,dive"`
	RxNumber    string      `json:"rxNumber"`
	Description string      `json:"description"`
	Notes       string      `json:"notes"`
	// DebtDate optionally backdates the entry's logical date (YYYY-MM-DD).
	DebtDate string `json:"debtDate" binding:"omitempty,datetime=2006-01-02"`
}

type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"omitempty,oneof=CASH CARD CHECK CREDIT SPLIT"`
	Notes         string          `json:"notes"`
}

type AddAdjustmentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Reason      string          `json:"reason" binding:"required"`
	ReferenceID *int64          `json:"referenceID"`
}

type AddRefundRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Reason      string          `json:"reason" binding:"required"`
	ReferenceID *int64          `json:"referenceID"`
}

type WriteOffRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

type EditDebtRequest struct {
	Items []ItemInput `json:"items" binding:"required,min=1,dive"`
	Notes string      `json:"notes"`
}

type EditPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes"`
}

type VoidRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BalanceResponse struct {
	CustomerID int64           `json:"customerID"`
	Balance    decimal.Decimal `json:"balance"`
}
