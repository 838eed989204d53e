package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/subcycle/subcycle/internal/api/dto"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/plan"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/testutil"
	"github.com/subcycle/subcycle/internal/types"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  CustomerService
	testData struct {
		plan *plan.SubscriptionPlan
	}
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCustomerService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		CustomerRepo: s.GetStores().CustomerRepo,
		PlanRepo:     s.GetStores().PlanRepo,
		InvoiceRepo:  s.GetStores().InvoiceRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
		RetryRepo:    s.GetStores().RetryRepo,
		Sink:         s.GetSink(),
		Decider:      &testutil.StaticDecider{Result: true},
		Now:          s.GetNow,
	})

	s.testData.plan = &plan.SubscriptionPlan{
		ID:           "plan_monthly",
		Name:         "Basic Monthly",
		Price:        decimal.NewFromInt(300),
		BillingCycle: types.BillingCycleMonthly,
		Status:       types.PlanStatusActive,
	}
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), s.testData.plan))
}

func (s *CustomerServiceSuite) TestCreateCustomer() {
	resp, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	s.NoError(err)
	s.True(strings.HasPrefix(resp.ID, "cust_"))
	s.Equal("Ada Lovelace", resp.Name)
	s.Empty(resp.SubscriptionPlanID)

	stored, err := s.GetStores().CustomerRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.NotNil(stored)
	s.Equal("ada@example.com", stored.Email)
}

func (s *CustomerServiceSuite) TestCreateCustomerInvalidEmail() {
	_, err := s.service.CreateCustomer(s.GetContext(), &dto.CreateCustomerRequest{
		Name:  "Bad Email",
		Email: "not-an-email",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestGetCustomerNotFound() {
	_, err := s.service.GetCustomer(s.GetContext(), "cust_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestAssignSubscription() {
	c := s.seedCustomer()

	resp, err := s.service.AssignSubscription(s.GetContext(), c.ID, s.testData.plan.ID)
	s.NoError(err)
	s.Equal(s.testData.plan.ID, resp.SubscriptionPlanID)
	s.Equal(types.SubscriptionStatusActive, resp.SubscriptionStatus)
	s.True(resp.SubscriptionStartDate.Equal(s.GetNow()))
}

func (s *CustomerServiceSuite) TestAssignSubscriptionRestartsCycle() {
	c := s.seedCustomer()
	c.SubscriptionPlanID = s.testData.plan.ID
	c.SubscriptionStatus = types.SubscriptionStatusActive
	c.SubscriptionStartDate = s.GetNow().AddDate(0, 0, -20)
	s.NoError(s.GetStores().CustomerRepo.Update(s.GetContext(), c))

	// reassigning the same plan resets the billing cycle start
	resp, err := s.service.AssignSubscription(s.GetContext(), c.ID, s.testData.plan.ID)
	s.NoError(err)
	s.True(resp.SubscriptionStartDate.Equal(s.GetNow()))
}

func (s *CustomerServiceSuite) TestAssignSubscriptionPlanNotFound() {
	c := s.seedCustomer()

	_, err := s.service.AssignSubscription(s.GetContext(), c.ID, "plan_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestCancelSubscriptionRetainsLastPlan() {
	c := s.seedCustomer()
	_, err := s.service.AssignSubscription(s.GetContext(), c.ID, s.testData.plan.ID)
	s.NoError(err)

	resp, err := s.service.CancelSubscription(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, resp.SubscriptionStatus)
	s.Equal(s.testData.plan.ID, resp.SubscriptionPlanID)
}

func (s *CustomerServiceSuite) TestReactivateAfterCancel() {
	c := s.seedCustomer()
	_, err := s.service.AssignSubscription(s.GetContext(), c.ID, s.testData.plan.ID)
	s.NoError(err)
	_, err = s.service.CancelSubscription(s.GetContext(), c.ID)
	s.NoError(err)

	resp, err := s.service.AssignSubscription(s.GetContext(), c.ID, s.testData.plan.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, resp.SubscriptionStatus)
}

func (s *CustomerServiceSuite) TestListCustomers() {
	s.seedCustomer()
	resp, err := s.service.ListCustomers(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Total)
}

func (s *CustomerServiceSuite) seedCustomer() *customer.Customer {
	c := &customer.Customer{
		ID:    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:  "Test Customer",
		Email: "test@example.com",
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), c))
	return c
}
