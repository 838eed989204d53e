package customer

import (
	"time"

	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/types"
)

// Customer represents a subscription customer in the system
type Customer struct {
	// ID is the unique identifier for the customer, system generated and immutable
	ID string `json:"id"`

	// Name is the name of the customer
	Name string `json:"name"`

	// Email is the notification address of the customer
	Email string `json:"email"`

	// SubscriptionPlanID is the id of the currently assigned plan. A cancelled
	// customer keeps its last plan id for historical reference.
	SubscriptionPlanID string `json:"subscription_plan_id"`

	// SubscriptionStatus is active or cancelled
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status"`

	// SubscriptionStartDate is reset whenever a new plan is assigned and is
	// the basis for proration on plan changes
	SubscriptionStartDate time.Time `json:"subscription_start_date"`
}

// IsActive reports whether the customer may accrue new cycle invoices
func (c *Customer) IsActive() bool {
	return c.SubscriptionStatus == types.SubscriptionStatusActive
}

// Validate validates the customer
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("invalid name").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}
	if c.Email == "" {
		return ierr.NewError("invalid email").
			WithHint("Customer email is required").
			Mark(ierr.ErrValidation)
	}
	if c.SubscriptionStatus != "" {
		if err := c.SubscriptionStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}
