package notification

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/subcycle/subcycle/internal/config"
)

// EmailClient wraps the resend client. A disabled or unconfigured client is
// valid and turns every send into a logged no-op upstream.
type EmailClient struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
}

// NewEmailClient creates a new email client from the email config
func NewEmailClient(cfg *config.Configuration) *EmailClient {
	if !cfg.Email.Enabled || cfg.Email.APIKey == "" {
		return &EmailClient{enabled: false}
	}

	return &EmailClient{
		client:      resend.NewClient(cfg.Email.APIKey),
		enabled:     true,
		fromAddress: cfg.Email.FromAddress,
		replyTo:     cfg.Email.ReplyTo,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

// SendEmail sends a plain text email and returns the provider message id
func (c *EmailClient) SendEmail(ctx context.Context, to, subject, body string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("email client is disabled")
	}

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}
