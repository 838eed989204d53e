package repository

import (
	"context"
	"strings"
	"time"

	"github.com/subcycle/subcycle/internal/domain/payment"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/types"
)

type retryRepository struct {
	store     kv.Store
	markerTTL time.Duration
	log       *logger.Logger
}

// NewRetryRepository builds the retry marker repository. markerTTL is how long
// a marker stays actionable before the store expires it, 24 hours by default.
func NewRetryRepository(store kv.Store, markerTTL time.Duration, log *logger.Logger) payment.RetryRepository {
	return &retryRepository{store: store, markerTTL: markerTTL, log: log}
}

func (r *retryRepository) Schedule(ctx context.Context, invoiceID string) error {
	// Marker values are empty, the key alone schedules the retry. Put is an
	// upsert so rescheduling the same invoice is idempotent.
	return r.store.Put(ctx, types.RetryKey(invoiceID), []byte{}, &kv.PutOptions{
		ExpireAfterSeconds: int64(r.markerTTL.Seconds()),
	})
}

func (r *retryRepository) ListDue(ctx context.Context) ([]string, error) {
	keys, err := r.store.List(ctx, types.KeyPrefixRetry)
	if err != nil {
		return nil, err
	}

	invoiceIDs := make([]string, 0, len(keys))
	for _, key := range keys {
		invoiceIDs = append(invoiceIDs, strings.TrimPrefix(key, types.KeyPrefixRetry))
	}
	return invoiceIDs, nil
}

func (r *retryRepository) Clear(ctx context.Context, invoiceID string) error {
	return r.store.Delete(ctx, types.RetryKey(invoiceID))
}
