package notification

import (
	"context"

	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/domain/payment"
)

// Sink delivers best-effort billing notifications. Implementations swallow
// and log their own delivery failures, a notification must never block a
// billing or payment state transition.
type Sink interface {
	SendInvoiceGenerated(ctx context.Context, c *customer.Customer, inv *invoice.Invoice)
	SendPaymentSuccessful(ctx context.Context, c *customer.Customer, p *payment.Payment)
	SendPaymentFailed(ctx context.Context, c *customer.Customer, inv *invoice.Invoice)
}
