package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/subcycle/subcycle/internal/api/dto"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/testutil"
	"github.com/subcycle/subcycle/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	decider  *testutil.StaticDecider
	service  PaymentService
	testData struct {
		customer *customer.Customer
		invoice  *invoice.Invoice
	}
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.decider = &testutil.StaticDecider{Result: true}
	s.service = NewPaymentService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		CustomerRepo: s.GetStores().CustomerRepo,
		PlanRepo:     s.GetStores().PlanRepo,
		InvoiceRepo:  s.GetStores().InvoiceRepo,
		PaymentRepo:  s.GetStores().PaymentRepo,
		RetryRepo:    s.GetStores().RetryRepo,
		Sink:         s.GetSink(),
		Decider:      s.decider,
		Now:          s.GetNow,
	})
	s.setupTestData()
}

func (s *PaymentServiceSuite) setupTestData() {
	s.testData.customer = &customer.Customer{
		ID:                    "cust_payment",
		Name:                  "Test Customer",
		Email:                 "test@example.com",
		SubscriptionPlanID:    "plan_monthly",
		SubscriptionStatus:    types.SubscriptionStatusActive,
		SubscriptionStartDate: s.GetNow().AddDate(0, 0, -10),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))

	s.testData.invoice = &invoice.Invoice{
		ID:            "inv_payment",
		CustomerID:    s.testData.customer.ID,
		Amount:        decimal.NewFromInt(300),
		DueDate:       s.GetNow().AddDate(0, 0, 30),
		PaymentStatus: types.InvoicePaymentStatusPending,
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), s.testData.invoice))
}

func (s *PaymentServiceSuite) TestProcessPaymentSuccess() {
	s.GetStore().ResetOps()
	resp, err := s.service.ProcessPayment(s.GetContext(), &dto.ProcessPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		PaymentMethod: types.PaymentMethodCreditCard,
	})
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(s.testData.invoice.ID, resp.InvoiceID)
	s.True(resp.Amount.Equal(decimal.NewFromInt(300)))
	s.True(resp.PaymentDate.Equal(s.GetNow()))

	// exactly two writes, the payment record first and the invoice second
	writes := s.GetStore().Writes()
	s.Len(writes, 2)
	s.Equal(testutil.StoreOp{Kind: "put", Key: types.PaymentKey(resp.ID)}, writes[0])
	s.Equal(testutil.StoreOp{Kind: "put", Key: types.InvoiceKey(s.testData.invoice.ID)}, writes[1])

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoicePaymentStatusPaid, inv.PaymentStatus)
	s.NotNil(inv.PaymentDate)
	s.True(inv.PaymentDate.Equal(resp.PaymentDate))

	events := s.GetSink().Events()
	s.Len(events, 1)
	s.Equal(testutil.EventPaymentSuccessful, events[0].Kind)
	s.Equal(resp.ID, events[0].PaymentID)
	s.True(events[0].PaymentDate.Equal(resp.PaymentDate))
}

func (s *PaymentServiceSuite) TestProcessPaymentDeclined() {
	s.decider.Result = false
	s.GetStore().ResetOps()

	resp, err := s.service.ProcessPayment(s.GetContext(), &dto.ProcessPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		PaymentMethod: types.PaymentMethodCreditCard,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsPaymentFailed(err))

	// the invoice update and the retry marker are the only writes, no
	// payment record is created for a declined attempt
	writes := s.GetStore().Writes()
	s.Len(writes, 2)
	s.Equal(testutil.StoreOp{Kind: "put", Key: types.InvoiceKey(s.testData.invoice.ID)}, writes[0])
	s.Equal(testutil.StoreOp{Kind: "put", Key: types.RetryKey(s.testData.invoice.ID)}, writes[1])

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoicePaymentStatusFailed, inv.PaymentStatus)
	s.Nil(inv.PaymentDate)

	due, err := s.GetStores().RetryRepo.ListDue(s.GetContext())
	s.NoError(err)
	s.Equal([]string{s.testData.invoice.ID}, due)

	events := s.GetSink().Events()
	s.Len(events, 1)
	s.Equal(testutil.EventPaymentFailed, events[0].Kind)
	s.Equal(s.testData.invoice.ID, events[0].InvoiceID)
}

func (s *PaymentServiceSuite) TestProcessPaymentInvoiceNotFound() {
	_, err := s.service.ProcessPayment(s.GetContext(), &dto.ProcessPaymentRequest{
		InvoiceID:     "inv_missing",
		PaymentMethod: types.PaymentMethodCreditCard,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestProcessPaymentAlreadyPaid() {
	inv := s.testData.invoice
	inv.MarkPaid(s.GetNow())
	s.NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), inv))

	s.GetStore().ResetOps()
	_, err := s.service.ProcessPayment(s.GetContext(), &dto.ProcessPaymentRequest{
		InvoiceID:     inv.ID,
		PaymentMethod: types.PaymentMethodPaypal,
	})
	s.Error(err)
	s.True(ierr.IsAlreadyPaid(err))
	s.Empty(s.GetStore().Writes())
	s.Empty(s.GetSink().Events())
}

func (s *PaymentServiceSuite) TestProcessPaymentInvalidMethod() {
	_, err := s.service.ProcessPayment(s.GetContext(), &dto.ProcessPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		PaymentMethod: "wire_transfer",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestProcessPaymentCustomerGoneAfterSettlement() {
	// the customer lookup for the notification happens after the payment and
	// invoice writes, those writes stay applied
	s.NoError(s.GetStore().Delete(s.GetContext(), types.CustomerKey(s.testData.customer.ID)))

	_, err := s.service.ProcessPayment(s.GetContext(), &dto.ProcessPaymentRequest{
		InvoiceID:     s.testData.invoice.ID,
		PaymentMethod: types.PaymentMethodCreditCard,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), s.testData.invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoicePaymentStatusPaid, inv.PaymentStatus)
	s.Empty(s.GetSink().Events())
}

func (s *PaymentServiceSuite) TestGetPaymentNotFound() {
	_, err := s.service.GetPayment(s.GetContext(), "pay_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
