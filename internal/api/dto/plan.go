package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/subcycle/subcycle/internal/domain/plan"
	"github.com/subcycle/subcycle/internal/types"
	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	Name         string             `json:"name" validate:"required"`
	Price        decimal.Decimal    `json:"price" validate:"required"`
	BillingCycle types.BillingCycle `json:"billing_cycle" validate:"required"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	return r.BillingCycle.Validate()
}

func (r *CreatePlanRequest) ToPlan() *plan.SubscriptionPlan {
	return &plan.SubscriptionPlan{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:         r.Name,
		Price:        r.Price,
		BillingCycle: r.BillingCycle,
		Status:       types.PlanStatusActive,
	}
}

type PlanResponse struct {
	*plan.SubscriptionPlan
}

// ListPlansResponse represents the response for listing plans
type ListPlansResponse struct {
	Items []*PlanResponse `json:"items"`
	Total int             `json:"total"`
}
