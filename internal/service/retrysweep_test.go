package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/testutil"
	"github.com/subcycle/subcycle/internal/types"
)

type RetrySweepServiceSuite struct {
	testutil.BaseServiceTestSuite
	decider  testutil.DeciderFunc
	service  RetrySweepService
	testData struct {
		customer *customer.Customer
		invoiceA *invoice.Invoice
		invoiceB *invoice.Invoice
	}
}

func TestRetrySweepService(t *testing.T) {
	suite.Run(t, new(RetrySweepServiceSuite))
}

func (s *RetrySweepServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.decider = func(_ context.Context, _ string, _ decimal.Decimal, _ types.PaymentMethod) bool {
		return true
	}
	params := ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		CustomerRepo: s.GetStores().CustomerRepo,
		PlanRepo:     s.GetStores().PlanRepo,
		InvoiceRepo:  s.GetStores().InvoiceRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
		RetryRepo:    s.GetStores().RetryRepo,
		Sink:         s.GetSink(),
		Decider: testutil.DeciderFunc(func(ctx context.Context, invoiceID string, amount decimal.Decimal, method types.PaymentMethod) bool {
			return s.decider(ctx, invoiceID, amount, method)
		}),
		Now: s.GetNow,
	}
	s.service = NewRetrySweepService(params, NewPaymentService(params))
	s.setupTestData()
}

func (s *RetrySweepServiceSuite) setupTestData() {
	s.testData.customer = &customer.Customer{
		ID:                    "cust_retry",
		Name:                  "Test Customer",
		Email:                 "test@example.com",
		SubscriptionPlanID:    "plan_monthly",
		SubscriptionStatus:    types.SubscriptionStatusActive,
		SubscriptionStartDate: s.GetNow().AddDate(0, 0, -5),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))

	s.testData.invoiceA = s.createFailedInvoice("inv_retry_a", 300)
	s.testData.invoiceB = s.createFailedInvoice("inv_retry_b", 600)
}

func (s *RetrySweepServiceSuite) createFailedInvoice(id string, amount int64) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            id,
		CustomerID:    s.testData.customer.ID,
		Amount:        decimal.NewFromInt(amount),
		DueDate:       s.GetNow().AddDate(0, 0, 30),
		PaymentStatus: types.InvoicePaymentStatusFailed,
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	s.NoError(s.GetStores().RetryRepo.Schedule(s.GetContext(), inv.ID))
	return inv
}

func (s *RetrySweepServiceSuite) TestSweepSettlesAllDueInvoices() {
	s.NoError(s.service.ProcessDueRetries(s.GetContext()))

	for _, id := range []string{s.testData.invoiceA.ID, s.testData.invoiceB.ID} {
		inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), id)
		s.NoError(err)
		s.Equal(types.InvoicePaymentStatusPaid, inv.PaymentStatus)
	}

	due, err := s.GetStores().RetryRepo.ListDue(s.GetContext())
	s.NoError(err)
	s.Empty(due)

	events := s.GetSink().Events()
	s.Len(events, 2)
	for _, e := range events {
		s.Equal(testutil.EventPaymentSuccessful, e.Kind)
	}
}

func (s *RetrySweepServiceSuite) TestSweepFailureDoesNotBlockOthers() {
	// invoice A declines again, invoice B settles
	s.decider = func(_ context.Context, invoiceID string, _ decimal.Decimal, _ types.PaymentMethod) bool {
		return invoiceID != s.testData.invoiceA.ID
	}

	s.NoError(s.service.ProcessDueRetries(s.GetContext()))

	invA, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), s.testData.invoiceA.ID)
	s.NoError(err)
	s.Equal(types.InvoicePaymentStatusFailed, invA.PaymentStatus)

	invB, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), s.testData.invoiceB.ID)
	s.NoError(err)
	s.Equal(types.InvoicePaymentStatusPaid, invB.PaymentStatus)
}

func (s *RetrySweepServiceSuite) TestSweepClearsMarkerAfterFailedReattempt() {
	// a marker is consumed by the sweep even when the reattempt declines, so
	// one failed invoice is not retried forever
	s.decider = func(_ context.Context, _ string, _ decimal.Decimal, _ types.PaymentMethod) bool {
		return false
	}

	s.NoError(s.service.ProcessDueRetries(s.GetContext()))

	due, err := s.GetStores().RetryRepo.ListDue(s.GetContext())
	s.NoError(err)
	s.Empty(due)
}

func (s *RetrySweepServiceSuite) TestSweepWithNoMarkers() {
	s.NoError(s.GetStores().RetryRepo.Clear(s.GetContext(), s.testData.invoiceA.ID))
	s.NoError(s.GetStores().RetryRepo.Clear(s.GetContext(), s.testData.invoiceB.ID))

	s.NoError(s.service.ProcessDueRetries(s.GetContext()))
	s.Empty(s.GetSink().Events())
}
