package service

import (
	"context"
	"math"
	"time"

	"github.com/subcycle/subcycle/internal/api/dto"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/domain/plan"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/types"
	"github.com/shopspring/decimal"
)

type BillingService interface {
	// GenerateInvoice opens a fresh billing cycle for the customer's current
	// plan
	GenerateInvoice(ctx context.Context, customerID string) (*dto.InvoiceResponse, error)

	// HandlePlanChange moves the customer to a new plan mid-cycle and raises
	// a prorated invoice for the difference
	HandlePlanChange(ctx context.Context, customerID, newPlanID string) (*dto.InvoiceResponse, error)

	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{ServiceParams: params}
}

func (s *billingService) GenerateInvoice(ctx context.Context, customerID string) (*dto.InvoiceResponse, error) {
	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !c.IsActive() {
		return nil, ierr.NewError("subscription is cancelled").
			WithHint("Cancelled customers do not accrue new invoices").
			WithReportableDetails(map[string]any{"customer_id": c.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	p, err := s.getPlan(ctx, c.SubscriptionPlanID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:    c.ID,
		Amount:        p.Price,
		DueDate:       now.AddDate(0, 0, p.BillingCycle.Days()),
		PaymentStatus: types.InvoicePaymentStatusPending,
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("generated invoice",
		"invoice_id", inv.ID,
		"customer_id", c.ID,
		"amount", inv.Amount,
		"due_date", inv.DueDate,
	)

	s.Sink.SendInvoiceGenerated(ctx, c, inv)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *billingService) HandlePlanChange(ctx context.Context, customerID, newPlanID string) (*dto.InvoiceResponse, error) {
	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	oldPlan, err := s.getPlan(ctx, c.SubscriptionPlanID)
	if err != nil {
		return nil, err
	}

	newPlan, err := s.getPlan(ctx, newPlanID)
	if err != nil {
		return nil, err
	}

	if newPlan.ID == c.SubscriptionPlanID {
		return nil, ierr.NewError("plan already assigned").
			WithHint("Customer is already on this plan").
			WithReportableDetails(map[string]any{
				"customer_id": c.ID,
				"plan_id":     newPlanID,
			}).
			Mark(ierr.ErrAlreadyAssigned)
	}

	now := s.now()
	amount := s.prorate(oldPlan, newPlan, c, now)

	inv := &invoice.Invoice{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID: c.ID,
		Amount:     amount,
		// the new plan's cycle starts now, its length sets the due date
		DueDate:       now.AddDate(0, 0, newPlan.BillingCycle.Days()),
		PaymentStatus: types.InvoicePaymentStatusPending,
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	c.SubscriptionPlanID = newPlan.ID
	c.SubscriptionStartDate = now
	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("handled plan change",
		"customer_id", c.ID,
		"old_plan_id", oldPlan.ID,
		"new_plan_id", newPlan.ID,
		"prorated_amount", amount,
	)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// prorate splits the cycle between the two plans based on how much of it the
// old plan was in effect. Both terms use the old plan's cycle length as the
// basis. Days elapsed is not clamped to the cycle length and the resulting
// amount may be negative on a downgrade, neither case is rejected.
func (s *billingService) prorate(oldPlan, newPlan *plan.SubscriptionPlan, c *customer.Customer, now time.Time) decimal.Decimal {
	daysInCycle := oldPlan.BillingCycle.Days()
	daysElapsed := int(math.Ceil(now.Sub(c.SubscriptionStartDate).Hours() / 24))

	cycle := decimal.NewFromInt(int64(daysInCycle))
	oldProration := oldPlan.Price.Div(cycle).Mul(decimal.NewFromInt(int64(daysElapsed)))
	newProration := newPlan.Price.Div(cycle).Mul(decimal.NewFromInt(int64(daysInCycle - daysElapsed)))

	return newProration.Sub(oldProration)
}

func (s *billingService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{"invoice_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *billingService) getCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ierr.NewError("customer not found").
			WithHint("Customer not found").
			WithReportableDetails(map[string]any{"customer_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *billingService) getPlan(ctx context.Context, id string) (*plan.SubscriptionPlan, error) {
	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ierr.NewError("subscription plan not found").
			WithHint("Subscription plan not found").
			WithReportableDetails(map[string]any{"plan_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}
