package types

import (
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionStatus tracks whether a customer is currently accruing invoices.
// A cancelled customer keeps its last plan id for historical reference but must
// not be billed for new cycles until reactivated.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusActive,
		SubscriptionStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Please provide a valid subscription status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlanStatus is the lifecycle status of a subscription plan
type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusArchived PlanStatus = "archived"
)

func (s PlanStatus) String() string {
	return string(s)
}

func (s PlanStatus) Validate() error {
	allowed := []PlanStatus{
		PlanStatusActive,
		PlanStatusArchived,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid plan status").
			WithHint("Please provide a valid plan status").
			Mark(ierr.ErrValidation)
	}
	return nil
}
