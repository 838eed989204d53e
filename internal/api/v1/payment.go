package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subcycle/subcycle/internal/api/dto"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/service"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, log: log}
}

// @Summary Process a payment
// @Description Attempt to settle an invoice. A decline schedules a retry.
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body dto.ProcessPaymentRequest true "Payment attempt"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 402 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ProcessPayment(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to process payment", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a payment by ID
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get payment", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
