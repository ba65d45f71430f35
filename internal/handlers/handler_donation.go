package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/gin-gonic/gin"
)

type donationHandler struct {
	donationService portssvc.DonationSvcFacade
}

func newDonationHandler(ds portssvc.DonationSvcFacade) *donationHandler {
	return &donationHandler{donationService: ds}
}

// registerDonationRoutes registers donation pool routes.
func registerDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	h := newDonationHandler(donationService)

	donations := rg.Group("/donations")
	{
		donations.POST("", h.createDonation)
		donations.GET("", h.listDonations)
		donations.GET("/totals", h.donationTotals)
		donations.GET("/donors", h.donorNames)
		donations.GET("/usage", h.usageHistory)
		donations.GET("/:id", h.getDonation)
		donations.POST("/:id/use", h.useDonation)
	}
}

// createDonation godoc
// @Summary Record a donation
// @Tags donations
// @Accept json
// @Produce json
// @Param donation body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} domain.Donation
// @Security BearerAuth
// @Router /donations [post]
func (h *donationHandler) createDonation(c *gin.Context) {
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create donation")
		return
	}
	c.JSON(http.StatusCreated, donation)
}

// listDonations godoc
// @Summary List donations
// @Description Lists all donations; ?available=true restricts to active donations with funds remaining
// @Tags donations
// @Produce json
// @Param available query bool false "Only donations with funds remaining"
// @Success 200 {array} domain.Donation
// @Security BearerAuth
// @Router /donations [get]
func (h *donationHandler) listDonations(c *gin.Context) {
	var err error
	var donations interface{}
	if c.Query("available") == "true" {
		donations, err = h.donationService.ListAvailableDonations(c.Request.Context())
	} else {
		donations, err = h.donationService.ListDonations(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, "Failed to list donations")
		return
	}
	c.JSON(http.StatusOK, donations)
}

// getDonation godoc
// @Summary Get a donation by ID
// @Tags donations
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} domain.Donation
// @Failure 404 {object} map[string]string "Donation not found"
// @Security BearerAuth
// @Router /donations/{id} [get]
func (h *donationHandler) getDonation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	donation, err := h.donationService.GetDonation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get donation")
		return
	}
	c.JSON(http.StatusOK, donation)
}

// useDonation godoc
// @Summary Apply donation funds to a customer's debt
// @Description Debits the pool and posts a payment to the customer in one transaction
// @Tags donations
// @Accept json
// @Produce json
// @Param id path int true "Donation ID"
// @Param usage body dto.UseDonationRequest true "Usage details"
// @Success 201 {object} dto.UseDonationResponse
// @Failure 422 {object} map[string]string "Insufficient funds or amount exceeds debt"
// @Security BearerAuth
// @Router /donations/{id}/use [post]
func (h *donationHandler) useDonation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UseDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.donationService.UseDonation(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to use donation")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// usageHistory godoc
// @Summary List donation usage history
// @Tags donations
// @Produce json
// @Param donationID query int false "Restrict to one donation"
// @Success 200 {array} domain.DonationUsage
// @Security BearerAuth
// @Router /donations/usage [get]
func (h *donationHandler) usageHistory(c *gin.Context) {
	var donationID *int64
	if raw := c.Query("donationID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donationID"})
			return
		}
		donationID = &id
	}

	usages, err := h.donationService.UsageHistory(c.Request.Context(), donationID)
	if err != nil {
		respondError(c, err, "Failed to list donation usage")
		return
	}
	c.JSON(http.StatusOK, usages)
}

// donationTotals godoc
// @Summary Donation pool totals
// @Tags donations
// @Produce json
// @Success 200 {object} domain.DonationTotals
// @Security BearerAuth
// @Router /donations/totals [get]
func (h *donationHandler) donationTotals(c *gin.Context) {
	totals, err := h.donationService.DonationTotals(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute donation totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// donorNames godoc
// @Summary List distinct donor names
// @Tags donations
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /donations/donors [get]
func (h *donationHandler) donorNames(c *gin.Context) {
	names, err := h.donationService.DonorNames(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list donors")
		return
	}
	c.JSON(http.StatusOK, names)
}
