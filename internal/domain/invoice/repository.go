package invoice

import "context"

// Repository provides access to stored invoices. Get returns (nil, nil) when
// the invoice does not exist.
type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error
}
