package customer

import "context"

// Repository provides access to stored customers. Get returns (nil, nil) when
// the customer does not exist, absence is an explicit value and not an error.
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	List(ctx context.Context) ([]*Customer, error)
}
