package repository

import (
	"context"
	"encoding/json"

	"github.com/subcycle/subcycle/internal/domain/payment"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/types"
)

type paymentRepository struct {
	store kv.Store
	log   *logger.Logger
}

func NewPaymentRepository(store kv.Store, log *logger.Logger) payment.Repository {
	return &paymentRepository{store: store, log: log}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode payment").
			WithReportableDetails(map[string]any{"payment_id": p.ID}).
			Mark(ierr.ErrDatabase)
	}
	return r.store.Put(ctx, types.PaymentKey(p.ID), data, nil)
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	data, found, err := r.store.Get(ctx, types.PaymentKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var p payment.Payment
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode stored payment").
			WithReportableDetails(map[string]any{"payment_id": id}).
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}
