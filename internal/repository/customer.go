package repository

import (
	"context"
	"encoding/json"

	"github.com/subcycle/subcycle/internal/domain/customer"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/types"
)

type customerRepository struct {
	store kv.Store
	log   *logger.Logger
}

func NewCustomerRepository(store kv.Store, log *logger.Logger) customer.Repository {
	return &customerRepository{store: store, log: log}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return r.put(ctx, c)
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	data, found, err := r.store.Get(ctx, types.CustomerKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var c customer.Customer
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode stored customer").
			WithReportableDetails(map[string]any{"customer_id": id}).
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return r.put(ctx, c)
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	keys, err := r.store.List(ctx, types.KeyPrefixCustomer)
	if err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, 0, len(keys))
	for _, key := range keys {
		data, found, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			// key expired or deleted between list and get
			continue
		}

		var c customer.Customer
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode stored customer").
				WithReportableDetails(map[string]any{"key": key}).
				Mark(ierr.ErrDatabase)
		}
		customers = append(customers, &c)
	}
	return customers, nil
}

func (r *customerRepository) put(ctx context.Context, c *customer.Customer) error {
	data, err := json.Marshal(c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode customer").
			WithReportableDetails(map[string]any{"customer_id": c.ID}).
			Mark(ierr.ErrDatabase)
	}
	return r.store.Put(ctx, types.CustomerKey(c.ID), data, nil)
}
