package service

import (
	"context"

	"github.com/subcycle/subcycle/internal/api/dto"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/domain/payment"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/types"
)

type PaymentService interface {
	// ProcessPayment attempts to settle an invoice. On a decline the invoice
	// is marked failed, a retry is scheduled and ErrPaymentFailed is returned.
	ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error)

	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

func (s *paymentService) ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid payment payload").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{"invoice_id": req.InvoiceID}).
			Mark(ierr.ErrNotFound)
	}

	if inv.PaymentStatus == types.InvoicePaymentStatusPaid {
		return nil, ierr.NewError("invoice is already paid").
			WithHint("Invoice is already paid").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrAlreadyPaid)
	}

	if s.Decider.Approve(ctx, inv.ID, inv.Amount, req.PaymentMethod) {
		return s.settle(ctx, inv, req.PaymentMethod)
	}
	return nil, s.decline(ctx, inv)
}

func (s *paymentService) settle(ctx context.Context, inv *invoice.Invoice, method types.PaymentMethod) (*dto.PaymentResponse, error) {
	now := s.now()
	pay := &payment.Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		InvoiceID:     inv.ID,
		Amount:        inv.Amount,
		PaymentMethod: method,
		PaymentDate:   now,
	}

	if err := s.PaymentRepo.Create(ctx, pay); err != nil {
		return nil, err
	}

	inv.MarkPaid(pay.PaymentDate)
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	c, err := s.getCustomer(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("payment succeeded",
		"payment_id", pay.ID,
		"invoice_id", inv.ID,
		"amount", pay.Amount,
	)

	s.Sink.SendPaymentSuccessful(ctx, c, pay)

	return &dto.PaymentResponse{Payment: pay}, nil
}

func (s *paymentService) decline(ctx context.Context, inv *invoice.Invoice) error {
	inv.MarkFailed()
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err := s.RetryRepo.Schedule(ctx, inv.ID); err != nil {
		return err
	}

	c, err := s.getCustomer(ctx, inv.CustomerID)
	if err != nil {
		return err
	}

	s.Logger.Warnw("payment declined, retry scheduled",
		"invoice_id", inv.ID,
		"customer_id", c.ID,
	)

	s.Sink.SendPaymentFailed(ctx, c, inv)

	return ierr.NewError("payment processing failed").
		WithHint("Payment processing failed. Retry scheduled.").
		WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
		Mark(ierr.ErrPaymentFailed)
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	pay, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, ierr.NewError("payment not found").
			WithHint("Payment not found").
			WithReportableDetails(map[string]any{"payment_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &dto.PaymentResponse{Payment: pay}, nil
}

func (s *paymentService) getCustomer(ctx context.Context, id string) (*customer.Customer, error) {
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
