package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subcycle/subcycle/internal/api/dto"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/service"
)

type InvoiceHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewInvoiceHandler(service service.BillingService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, log: log}
}

// @Summary Generate an invoice
// @Description Open a new billing cycle invoice for the customer's plan
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.GenerateInvoiceRequest true "Customer to invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid invoice payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GenerateInvoice(c.Request.Context(), req.CustomerID)
	if err != nil {
		h.log.Error("Failed to generate invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an invoice by ID
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Change a customer's plan mid-cycle
// @Description Switch plans and raise a prorated invoice for the difference
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param change body dto.ChangePlanRequest true "Plan change"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subscriptions/change-plan [post]
func (h *InvoiceHandler) ChangePlan(c *gin.Context) {
	var req dto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid plan change payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.HandlePlanChange(c.Request.Context(), req.CustomerID, req.NewPlanID)
	if err != nil {
		h.log.Error("Failed to change plan", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
