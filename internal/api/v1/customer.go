package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subcycle/subcycle/internal/api/dto"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/service"
)

type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

func NewCustomerHandler(service service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, log: log}
}

// @Summary Create a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create customer", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a customer by ID
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get customer", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List customers
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.ListCustomersResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	resp, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list customers", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Assign a subscription plan
// @Description Put the customer on a plan and restart the billing cycle
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param subscription body dto.AssignSubscriptionRequest true "Plan to assign"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /customers/{id}/subscription [post]
func (h *CustomerHandler) AssignSubscription(c *gin.Context) {
	id := c.Param("id")

	var req dto.AssignSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid subscription payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AssignSubscription(c.Request.Context(), id, req.PlanID)
	if err != nil {
		h.log.Error("Failed to assign subscription", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a subscription
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /customers/{id}/subscription/cancel [post]
func (h *CustomerHandler) CancelSubscription(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.CancelSubscription(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to cancel subscription", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
