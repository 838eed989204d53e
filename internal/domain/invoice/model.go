package invoice

import (
	"time"

	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents an amount a customer owes for a billing cycle or a
// mid-cycle plan change. Created by the billing engine, mutated only by the
// payment engine, never deleted.
type Invoice struct {
	// ID is the unique identifier for the invoice
	ID string `json:"id"`

	// CustomerID is the customer this invoice bills
	CustomerID string `json:"customer_id"`

	// Amount is the amount due. Plan-change invoices may carry a negative
	// amount, a downgrade credit is not rejected.
	Amount decimal.Decimal `json:"amount"`

	// DueDate is when payment is due
	DueDate time.Time `json:"due_date"`

	// PaymentStatus is pending, paid or failed
	PaymentStatus types.InvoicePaymentStatus `json:"payment_status"`

	// PaymentDate is set only when the invoice is paid
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

// Validate validates the invoice
func (i *Invoice) Validate() error {
	if i.CustomerID == "" {
		return ierr.NewError("invalid customer id").
			WithHint("Invoice customer id is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.PaymentStatus.Validate(); err != nil {
		return err
	}
	// payment_date present iff paid
	if (i.PaymentStatus == types.InvoicePaymentStatusPaid) != (i.PaymentDate != nil) {
		return ierr.NewError("inconsistent payment date").
			WithHint("Payment date must be set exactly when the invoice is paid").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MarkPaid transitions the invoice to paid with the settlement date
func (i *Invoice) MarkPaid(paymentDate time.Time) {
	i.PaymentStatus = types.InvoicePaymentStatusPaid
	i.PaymentDate = &paymentDate
}

// MarkFailed transitions the invoice to failed
func (i *Invoice) MarkFailed() {
	i.PaymentStatus = types.InvoicePaymentStatusFailed
	i.PaymentDate = nil
}
