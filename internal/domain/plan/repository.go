package plan

import "context"

// Repository provides access to stored plans. Get returns (nil, nil) when the
// plan does not exist.
type Repository interface {
	Create(ctx context.Context, plan *SubscriptionPlan) error
	Get(ctx context.Context, id string) (*SubscriptionPlan, error)
	List(ctx context.Context) ([]*SubscriptionPlan, error)
}
