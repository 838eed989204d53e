package service

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"github.com/subcycle/subcycle/internal/api/dto"
	"github.com/subcycle/subcycle/internal/types"
)

type RetrySweepService interface {
	// ProcessDueRetries reattempts settlement for every invoice with a live
	// retry marker and clears the processed markers
	ProcessDueRetries(ctx context.Context) error
}

type retrySweepService struct {
	ServiceParams
	paymentService PaymentService
}

func NewRetrySweepService(params ServiceParams, paymentService PaymentService) RetrySweepService {
	return &retrySweepService{
		ServiceParams:  params,
		paymentService: paymentService,
	}
}

func (s *retrySweepService) ProcessDueRetries(ctx context.Context) error {
	invoiceIDs, err := s.RetryRepo.ListDue(ctx)
	if err != nil {
		return err
	}

	if len(invoiceIDs) == 0 {
		s.Logger.Debugw("retry sweep found no markers")
		return nil
	}

	s.Logger.Infow("starting retry sweep", "markers", len(invoiceIDs))

	workers := s.Config.Retry.SweepWorkers
	if workers < 1 {
		workers = 1
	}

	p := pool.New().WithMaxGoroutines(workers)
	for _, invoiceID := range invoiceIDs {
		p.Go(func() {
			s.processMarker(ctx, invoiceID)
		})
	}
	p.Wait()

	s.Logger.Infow("completed retry sweep", "markers", len(invoiceIDs))
	return nil
}

// processMarker reattempts one invoice. All errors are logged and swallowed,
// one failing invoice must not abort the sweep over the remaining markers.
// The marker is cleared regardless of outcome, so a marker ages out after a
// failed reattempt instead of accumulating forever.
func (s *retrySweepService) processMarker(ctx context.Context, invoiceID string) {
	_, err := s.paymentService.ProcessPayment(ctx, &dto.ProcessPaymentRequest{
		InvoiceID: invoiceID,
		// automated retries always charge the card on file
		PaymentMethod: types.PaymentMethodCreditCard,
	})
	if err != nil {
		s.Logger.Errorw("retry payment attempt failed",
			"invoice_id", invoiceID,
			"error", err,
		)
	} else {
		s.Logger.Infow("retry payment attempt succeeded", "invoice_id", invoiceID)
	}

	if err := s.RetryRepo.Clear(ctx, invoiceID); err != nil {
		s.Logger.Errorw("failed to clear retry marker",
			"invoice_id", invoiceID,
			"error", err,
		)
	}
}
