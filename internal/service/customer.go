package service

import (
	"context"

	"github.com/subcycle/subcycle/internal/api/dto"
	"github.com/subcycle/subcycle/internal/domain/customer"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/types"
	"github.com/samber/lo"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) (*dto.ListCustomersResponse, error)
	AssignSubscription(ctx context.Context, customerID, planID string) (*dto.CustomerResponse, error)
	CancelSubscription(ctx context.Context, customerID string) (*dto.CustomerResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid customer payload").
			Mark(ierr.ErrValidation)
	}

	c := req.ToCustomer()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created customer", "customer_id", c.ID)
	return &dto.CustomerResponse{Customer: c}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := s.getCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{Customer: c}, nil
}

func (s *customerService) ListCustomers(ctx context.Context) (*dto.ListCustomersResponse, error) {
	customers, err := s.CustomerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
		return &dto.CustomerResponse{Customer: c}
	})
	return &dto.ListCustomersResponse{Items: items, Total: len(items)}, nil
}

// AssignSubscription puts the customer on a plan, reactivating a cancelled
// subscription and restarting the billing cycle from now.
func (s *customerService) AssignSubscription(ctx context.Context, customerID, planID string) (*dto.CustomerResponse, error) {
	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ierr.NewError("plan not found").
			WithHint("Subscription plan not found").
			WithReportableDetails(map[string]any{"plan_id": planID}).
			Mark(ierr.ErrNotFound)
	}

	c.SubscriptionPlanID = p.ID
	c.SubscriptionStatus = types.SubscriptionStatusActive
	c.SubscriptionStartDate = s.now()

	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("assigned subscription plan",
		"customer_id", c.ID,
		"plan_id", p.ID,
	)
	return &dto.CustomerResponse{Customer: c}, nil
}

// CancelSubscription stops new cycle invoices for the customer. The last plan
// id stays on the record for historical reference.
func (s *customerService) CancelSubscription(ctx context.Context, customerID string) (*dto.CustomerResponse, error) {
	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	c.SubscriptionStatus = types.SubscriptionStatusCancelled

	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("cancelled subscription", "customer_id", c.ID)
	return &dto.CustomerResponse{Customer: c}, nil
}

func (s *customerService) getCustomer(ctx context.Context, id string) (*customer.Customer, error) {
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
