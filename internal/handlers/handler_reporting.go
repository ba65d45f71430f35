package handlers

import (
	"net/http"
	"strconv"

	"github.com/creditkeep/creditkeep/internal/core/domain"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers read-only report routes. The audit trail
// is manager-and-up.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	managers := middleware.RequireRole(string(domain.RoleManager), string(domain.RoleAdmin))

	reports := rg.Group("/reports")
	{
		reports.GET("/outstanding", h.totalOutstanding)
		reports.GET("/debtors", h.customersWithDebt)
		reports.GET("/aging", h.agingReport)
		reports.GET("/daily", h.dailyReconciliation)
		reports.GET("/transactions", h.transactionsByDate)
		reports.GET("/activity", h.recentActivity)
		reports.GET("/overdue", h.overdueCustomers)
		reports.GET("/over-limit", h.overLimitCustomers)
		reports.GET("/audit", managers, h.auditTrail)
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// totalOutstanding godoc
// @Summary Total outstanding debt
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /reports/outstanding [get]
func (h *reportingHandler) totalOutstanding(c *gin.Context) {
	total, err := h.reportingService.TotalOutstandingDebt(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute outstanding debt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalOutstanding": total})
}

// customersWithDebt godoc
// @Summary Customers with outstanding debt
// @Tags reports
// @Produce json
// @Success 200 {array} domain.CustomerDebtRow
// @Security BearerAuth
// @Router /reports/debtors [get]
func (h *reportingHandler) customersWithDebt(c *gin.Context) {
	rows, err := h.reportingService.CustomersWithDebt(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list debtors")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// agingReport godoc
// @Summary Debt aging report
// @Description Buckets each debtor's balance by the age of their oldest open debt
// @Tags reports
// @Produce json
// @Success 200 {array} domain.AgingRow
// @Security BearerAuth
// @Router /reports/aging [get]
func (h *reportingHandler) agingReport(c *gin.Context) {
	rows, err := h.reportingService.AgingReport(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build aging report")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// dailyReconciliation godoc
// @Summary Daily reconciliation
// @Tags reports
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.DailyReconciliation
// @Security BearerAuth
// @Router /reports/daily [get]
func (h *reportingHandler) dailyReconciliation(c *gin.Context) {
	rec, err := h.reportingService.DailyReconciliation(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err, "Failed to build reconciliation")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// transactionsByDate godoc
// @Summary Transactions in a date range
// @Tags reports
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD, inclusive)"
// @Param customerID query int false "Restrict to one customer"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.TransactionsByDateResponse
// @Security BearerAuth
// @Router /reports/transactions [get]
func (h *reportingHandler) transactionsByDate(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end dates are required"})
		return
	}

	var customerID *int64
	if raw := c.Query("customerID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customerID"})
			return
		}
		customerID = &id
	}

	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	entries, newToken, err := h.reportingService.TransactionsByDate(
		c.Request.Context(), start, end, customerID, queryInt(c, "limit", 100), nextToken)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.TransactionsByDateResponse{Entries: entries, NextToken: newToken})
}

// recentActivity godoc
// @Summary Recent ledger activity
// @Tags reports
// @Produce json
// @Param limit query int false "Number of entries"
// @Success 200 {array} domain.LedgerEntry
// @Security BearerAuth
// @Router /reports/activity [get]
func (h *reportingHandler) recentActivity(c *gin.Context) {
	entries, err := h.reportingService.RecentActivity(c.Request.Context(), queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, err, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// overdueCustomers godoc
// @Summary Customers with overdue debt
// @Tags reports
// @Produce json
// @Param days query int false "Minimum age of oldest open debt"
// @Success 200 {array} domain.CustomerDebtRow
// @Security BearerAuth
// @Router /reports/overdue [get]
func (h *reportingHandler) overdueCustomers(c *gin.Context) {
	rows, err := h.reportingService.OverdueCustomers(c.Request.Context(), queryInt(c, "days", 30))
	if err != nil {
		respondError(c, err, "Failed to list overdue customers")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// overLimitCustomers godoc
// @Summary Customers over their credit limit
// @Tags reports
// @Produce json
// @Success 200 {array} domain.CustomerDebtRow
// @Security BearerAuth
// @Router /reports/over-limit [get]
func (h *reportingHandler) overLimitCustomers(c *gin.Context) {
	rows, err := h.reportingService.OverLimitCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list over-limit customers")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// auditTrail godoc
// @Summary Audit trail
// @Tags reports
// @Produce json
// @Param limit query int false "Number of records"
// @Param userID query int false "Restrict to one user"
// @Param table query string false "Restrict to one table"
// @Success 200 {array} domain.AuditRecord
// @Security BearerAuth
// @Router /reports/audit [get]
func (h *reportingHandler) auditTrail(c *gin.Context) {
	var userID *int64
	if raw := c.Query("userID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userID"})
			return
		}
		userID = &id
	}

	records, err := h.reportingService.AuditTrail(c.Request.Context(), queryInt(c, "limit", 100), userID, c.Query("table"))
	if err != nil {
		respondError(c, err, "Failed to list audit records")
		return
	}
	c.JSON(http.StatusOK, records)
}
