package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subcycle/subcycle/internal/api/dto"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/service"
)

type PlanHandler struct {
	service service.PlanService
	log     *logger.Logger
}

func NewPlanHandler(service service.PlanService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{service: service, log: log}
}

// @Summary Create a subscription plan
// @Description Create a plan with a price and billing cycle
// @Tags Plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan configuration"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create plan", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a plan by ID
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Plan ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPlan(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get plan", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List plans
// @Tags Plans
// @Produce json
// @Success 200 {object} dto.ListPlansResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	resp, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list plans", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
