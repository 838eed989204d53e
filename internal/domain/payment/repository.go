package payment

import "context"

// Repository provides access to stored payments. Get returns (nil, nil) when
// the payment does not exist.
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
}

// RetryRepository manages the retry markers that schedule automated
// settlement reattempts for failed invoices. Schedule is idempotent with
// respect to the invoice id, at most one marker exists per invoice.
type RetryRepository interface {
	// Schedule writes a marker that expires after the configured delay
	Schedule(ctx context.Context, invoiceID string) error

	// ListDue returns the invoice ids of all live markers
	ListDue(ctx context.Context) ([]string, error)

	// Clear removes the marker for an invoice, clearing an absent marker is a
	// no-op
	Clear(ctx context.Context, invoiceID string) error
}
