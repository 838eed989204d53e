package types

import (
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/samber/lo"
)

// BillingCycle is the recurring period after which a new invoice is due
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) String() string {
	return string(c)
}

func (c BillingCycle) Validate() error {
	allowed := []BillingCycle{
		BillingCycleMonthly,
		BillingCycleYearly,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Please provide a valid billing cycle").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Days returns the fixed length of the cycle in days. Proration and due date
// arithmetic both use these lengths, a calendar month is always 30 days here.
func (c BillingCycle) Days() int {
	if c == BillingCycleYearly {
		return 365
	}
	return 30
}

// InvoicePaymentStatus is the settlement state of an invoice. An invoice is in
// exactly one of these states at any time and payment_date is present iff paid.
type InvoicePaymentStatus string

const (
	InvoicePaymentStatusPending InvoicePaymentStatus = "pending"
	InvoicePaymentStatusPaid    InvoicePaymentStatus = "paid"
	InvoicePaymentStatusFailed  InvoicePaymentStatus = "failed"
)

func (s InvoicePaymentStatus) String() string {
	return string(s)
}

func (s InvoicePaymentStatus) Validate() error {
	allowed := []InvoicePaymentStatus{
		InvoicePaymentStatusPending,
		InvoicePaymentStatusPaid,
		InvoicePaymentStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice payment status").
			WithHint("Please provide a valid invoice payment status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethod is how a settlement attempt is charged
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPaypal     PaymentMethod = "paypal"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Validate() error {
	allowed := []PaymentMethod{
		PaymentMethodCreditCard,
		PaymentMethodPaypal,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid payment method").
			WithHint("Please provide a valid payment method").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
