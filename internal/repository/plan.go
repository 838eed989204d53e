package repository

import (
	"context"
	"encoding/json"

	"github.com/subcycle/subcycle/internal/domain/plan"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/types"
)

type planRepository struct {
	store kv.Store
	log   *logger.Logger
}

func NewPlanRepository(store kv.Store, log *logger.Logger) plan.Repository {
	return &planRepository{store: store, log: log}
}

func (r *planRepository) Create(ctx context.Context, p *plan.SubscriptionPlan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode plan").
			WithReportableDetails(map[string]any{"plan_id": p.ID}).
			Mark(ierr.ErrDatabase)
	}
	return r.store.Put(ctx, types.PlanKey(p.ID), data, nil)
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.SubscriptionPlan, error) {
	data, found, err := r.store.Get(ctx, types.PlanKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var p plan.SubscriptionPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode stored plan").
			WithReportableDetails(map[string]any{"plan_id": id}).
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *planRepository) List(ctx context.Context) ([]*plan.SubscriptionPlan, error) {
	keys, err := r.store.List(ctx, types.KeyPrefixPlan)
	if err != nil {
		return nil, err
	}

	plans := make([]*plan.SubscriptionPlan, 0, len(keys))
	for _, key := range keys {
		data, found, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		var p plan.SubscriptionPlan
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode stored plan").
				WithReportableDetails(map[string]any{"key": key}).
				Mark(ierr.ErrDatabase)
		}
		plans = append(plans, &p)
	}
	return plans, nil
}
