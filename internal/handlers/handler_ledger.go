package handlers

import (
	"net/http"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers ledger entry routes. Entry-level mutations
// (edit, void, unvoid, delete) need manager or admin.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)
	managers := middleware.RequireRole(string(domain.RoleManager), string(domain.RoleAdmin))

	customers := rg.Group("/customers/:id")
	{
		customers.POST("/debts", h.addDebt)
		customers.POST("/payments", h.addPayment)
		customers.POST("/adjustments", h.addAdjustment)
		customers.POST("/refunds", managers, h.addRefund)
		customers.POST("/writeoffs", managers, h.writeOff)
		customers.GET("/balance", h.getBalance)
		customers.GET("/ledger", h.listLedger)
		customers.GET("/credit-check", h.creditCheck)
	}

	entries := rg.Group("/entries/:id")
	{
		entries.PUT("/debt", managers, h.editDebt)
		entries.PUT("/payment", managers, h.editPayment)
		entries.POST("/void", managers, h.voidEntry)
		entries.POST("/unvoid", managers, h.unvoidEntry)
		entries.DELETE("", managers, h.deleteEntry)
	}
}

// addDebt godoc
// @Summary Record a new debt
// @Description Adds a NEW_DEBT entry with its product lines; the amount is the sum of price times quantity
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param debt body dto.AddDebtRequest true "Debt details"
// @Success 201 {object} domain.LedgerEntry
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Inactive customer"
// @Security BearerAuth
// @Router /customers/{id}/debts [post]
func (h *ledgerHandler) addDebt(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AddDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.ledgerService.AddDebt(c.Request.Context(), customerID, req, actorIDFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to add debt")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// addPayment godoc
// @Summary Record a payment
// @Description Adds a PAYMENT entry; rejected when the customer owes nothing or the amount exceeds the balance
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param payment body dto.AddPaymentRequest true "Payment details"
// @Success 201 {object} domain.LedgerEntry
// @Failure 422 {object} map[string]string "Payment exceeds outstanding debt"
// @Security BearerAuth
// @Router /customers/{id}/payments [post]
func (h *ledgerHandler) addPayment(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.ledgerService.AddPayment(c.Request.Context(), customerID, req, actorIDFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to add payment")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// addAdjustment godoc
// @Summary Record a balance adjustment
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param adjustment body dto.AddAdjustmentRequest true "Adjustment details"
// @Success 201 {object} domain.LedgerEntry
// @Security BearerAuth
// @Router /customers/{id}/adjustments [post]
func (h *ledgerHandler) addAdjustment(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AddAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.ledgerService.AddAdjustment(c.Request.Context(), customerID, req, actorIDFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to add adjustment")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// addRefund godoc
// @Summary Record a refund
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param refund body dto.AddRefundRequest true "Refund details"
// @Success 201 {object} domain.LedgerEntry
// @Security BearerAuth
// @Router /customers/{id}/refunds [post]
func (h *ledgerHandler) addRefund(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AddRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.ledgerService.AddRefund(c.Request.Context(), customerID, req, actorIDFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to add refund")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// writeOff godoc
// @Summary Write off debt
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param writeoff body dto.WriteOffRequest true "Write-off details"
// @Success 201 {object} domain.LedgerEntry
// @Security BearerAuth
// @Router /customers/{id}/writeoffs [post]
func (h *ledgerHandler) writeOff(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.WriteOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.ledgerService.WriteOff(c.Request.Context(), customerID, req, actorIDFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to write off debt")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// getBalance godoc
// @Summary Get a customer's balance
// @Description The balance counts every entry, voided and deleted included
// @Tags ledger
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{id}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{CustomerID: customerID, Balance: balance})
}

// listLedger godoc
// @Summary List a customer's ledger
// @Description Newest first. Soft-deleted entries are never shown; voided entries only with ?includeVoided=true
// @Tags ledger
// @Produce json
// @Param id path int true "Customer ID"
// @Param includeVoided query bool false "Include voided entries"
// @Success 200 {array} domain.LedgerEntry
// @Security BearerAuth
// @Router /customers/{id}/ledger [get]
func (h *ledgerHandler) listLedger(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	includeVoided := c.Query("includeVoided") == "true"

	entries, err := h.ledgerService.ListForCustomer(c.Request.Context(), customerID, includeVoided)
	if err != nil {
		respondError(c, err, "Failed to list ledger")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// creditCheck godoc
// @Summary Check a prospective debt against the credit limit
// @Description Advisory only; never blocks a write
// @Tags ledger
// @Produce json
// @Param id path int true "Customer ID"
// @Param amount query string true "Prospective debt amount"
// @Success 200 {object} domain.CreditCheck
// @Security BearerAuth
// @Router /customers/{id}/credit-check [get]
func (h *ledgerHandler) creditCheck(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	check, err := h.ledgerService.CheckCreditLimit(c.Request.Context(), customerID, amount)
	if err != nil {
		respondError(c, err, "Failed to check credit limit")
		return
	}
	c.JSON(http.StatusOK, check)
}

// editDebt godoc
// @Summary Edit a debt entry
// @Description Replaces the debt's items wholesale and recalculates all later balances
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param debt body dto.EditDebtRequest true "New items and notes"
// @Success 204 "Edited"
// @Failure 400 {object} map[string]string "Entry is not a debt"
// @Security BearerAuth
// @Router /entries/{id}/debt [put]
func (h *ledgerHandler) editDebt(c *gin.Context) {
	entryID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.EditDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.ledgerService.EditDebtEntry(c.Request.Context(), entryID, req); err != nil {
		respondError(c, err, "Failed to edit debt entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// editPayment godoc
// @Summary Edit a payment entry
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param payment body dto.EditPaymentRequest true "New amount and notes"
// @Success 204 "Edited"
// @Failure 400 {object} map[string]string "Entry is not a payment"
// @Security BearerAuth
// @Router /entries/{id}/payment [put]
func (h *ledgerHandler) editPayment(c *gin.Context) {
	entryID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.EditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.ledgerService.EditPaymentEntry(c.Request.Context(), entryID, req); err != nil {
		respondError(c, err, "Failed to edit payment entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// voidEntry godoc
// @Summary Void an entry
// @Description Hides the entry from default listings; the balance is unchanged
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param void body dto.VoidRequest true "Void reason"
// @Success 200 {object} map[string]bool "voided: whether this call changed the entry"
// @Security BearerAuth
// @Router /entries/{id}/void [post]
func (h *ledgerHandler) voidEntry(c *gin.Context) {
	entryID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	voided, err := h.ledgerService.VoidEntry(c.Request.Context(), entryID, req.Reason, actorIDFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to void entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"voided": voided})
}

// unvoidEntry godoc
// @Summary Restore a voided entry
// @Tags ledger
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]bool "restored: whether this call changed the entry"
// @Security BearerAuth
// @Router /entries/{id}/unvoid [post]
func (h *ledgerHandler) unvoidEntry(c *gin.Context) {
	entryID, ok := paramID(c)
	if !ok {
		return
	}

	restored, err := h.ledgerService.UnvoidEntry(c.Request.Context(), entryID, actorIDFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to unvoid entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": restored})
}

// deleteEntry godoc
// @Summary Soft-delete an entry
// @Description The row stays and keeps counting toward the balance; it just disappears from listings
// @Tags ledger
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]bool "deleted: whether this call changed the entry"
// @Security BearerAuth
// @Router /entries/{id} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	entryID, ok := paramID(c)
	if !ok {
		return
	}

	deleted, err := h.ledgerService.DeleteEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err, "Failed to delete entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
