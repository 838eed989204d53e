package payment

import (
	"time"

	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/types"
	"github.com/shopspring/decimal"
)

// Payment records one successful settlement of an invoice. Failed attempts
// produce no Payment record, only an invoice status change and a retry
// marker. Payments are immutable once created.
type Payment struct {
	// ID is the unique identifier for the payment
	ID string `json:"id"`

	// InvoiceID is the invoice this payment settled
	InvoiceID string `json:"invoice_id"`

	// Amount is copied from the invoice at settlement time, not recomputed
	Amount decimal.Decimal `json:"amount"`

	// PaymentMethod is how the payment was charged
	PaymentMethod types.PaymentMethod `json:"payment_method"`

	// PaymentDate is when the settlement succeeded
	PaymentDate time.Time `json:"payment_date"`
}

// Validate validates the payment
func (p *Payment) Validate() error {
	if p.InvoiceID == "" {
		return ierr.NewError("invalid invoice id").
			WithHint("Payment invoice id is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.PaymentMethod.Validate(); err != nil {
		return err
	}
	return nil
}
