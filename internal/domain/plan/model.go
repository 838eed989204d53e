package plan

import (
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/types"
	"github.com/shopspring/decimal"
)

// SubscriptionPlan represents a priced billing plan. Plans are read-only to
// the billing and payment engines, there are no in-place price edits once a
// plan has been referenced by an invoice calculation.
type SubscriptionPlan struct {
	// ID is the unique identifier for the plan
	ID string `json:"id"`

	// Name is the display name of the plan
	Name string `json:"name"`

	// Price is the recurring charge per billing cycle
	Price decimal.Decimal `json:"price"`

	// BillingCycle is monthly or yearly
	BillingCycle types.BillingCycle `json:"billing_cycle"`

	// Status is the lifecycle status of the plan
	Status types.PlanStatus `json:"status"`
}

// Validate validates the plan
func (p *SubscriptionPlan) Validate() error {
	if p.Name == "" {
		return ierr.NewError("invalid name").
			WithHint("Plan name is required").
			Mark(ierr.ErrValidation)
	}
	if p.Price.IsZero() || p.Price.IsNegative() {
		return ierr.NewError("invalid price").
			WithHint("Plan price must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if err := p.BillingCycle.Validate(); err != nil {
		return err
	}
	if p.Status != "" {
		if err := p.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}
