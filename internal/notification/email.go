package notification

import (
	"context"
	"fmt"

	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/domain/payment"
	"github.com/subcycle/subcycle/internal/logger"
)

// EmailSink implements Sink over the email client
type EmailSink struct {
	client *EmailClient
	log    *logger.Logger
}

func NewEmailSink(client *EmailClient, log *logger.Logger) *EmailSink {
	return &EmailSink{client: client, log: log}
}

func (s *EmailSink) SendInvoiceGenerated(ctx context.Context, c *customer.Customer, inv *invoice.Invoice) {
	body := fmt.Sprintf(`Dear %s,

A new invoice has been generated for your subscription.

Invoice Details:
- Invoice ID: %s
- Amount: $%s
- Due Date: %s

Please log in to your account to view and pay the invoice.

Thank you for your business!`,
		c.Name, inv.ID, inv.Amount.String(), inv.DueDate.Format("2006-01-02"))

	s.send(ctx, c.Email, "New Invoice Generated", body)
}

func (s *EmailSink) SendPaymentSuccessful(ctx context.Context, c *customer.Customer, p *payment.Payment) {
	body := fmt.Sprintf(`Dear %s,

We've successfully received your payment.

Payment Details:
- Payment ID: %s
- Amount: $%s
- Date: %s

Thank you for your prompt payment!`,
		c.Name, p.ID, p.Amount.String(), p.PaymentDate.Format("2006-01-02"))

	s.send(ctx, c.Email, "Payment Successful", body)
}

func (s *EmailSink) SendPaymentFailed(ctx context.Context, c *customer.Customer, inv *invoice.Invoice) {
	body := fmt.Sprintf(`Dear %s,

We were unable to process your payment for the recent invoice.

Invoice Details:
- Invoice ID: %s
- Amount: $%s
- Due Date: %s

Please log in to your account to update your payment method or contact our support team for assistance.

We will attempt to process the payment again in 24 hours.`,
		c.Name, inv.ID, inv.Amount.String(), inv.DueDate.Format("2006-01-02"))

	s.send(ctx, c.Email, "Payment Failed", body)
}

// send delivers one message. Failures are logged and swallowed here, they
// never surface to the billing or payment engines.
func (s *EmailSink) send(ctx context.Context, to, subject, body string) {
	if !s.client.IsEnabled() {
		s.log.Debugw("email client is disabled, skipping notification",
			"to", to,
			"subject", subject,
		)
		return
	}

	messageID, err := s.client.SendEmail(ctx, to, subject, body)
	if err != nil {
		s.log.Errorw("failed to send notification email",
			"error", err,
			"to", to,
			"subject", subject,
		)
		return
	}

	s.log.Infow("notification email sent",
		"message_id", messageID,
		"to", to,
		"subject", subject,
	)
}
