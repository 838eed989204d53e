package repository

import (
	"context"
	"encoding/json"

	"github.com/subcycle/subcycle/internal/domain/invoice"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/types"
)

type invoiceRepository struct {
	store kv.Store
	log   *logger.Logger
}

func NewInvoiceRepository(store kv.Store, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{store: store, log: log}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.put(ctx, inv)
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	data, found, err := r.store.Get(ctx, types.InvoiceKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var inv invoice.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode stored invoice").
			WithReportableDetails(map[string]any{"invoice_id": id}).
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return r.put(ctx, inv)
}

func (r *invoiceRepository) put(ctx context.Context, inv *invoice.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode invoice").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrDatabase)
	}
	return r.store.Put(ctx, types.InvoiceKey(inv.ID), data, nil)
}
