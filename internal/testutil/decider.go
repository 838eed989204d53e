package testutil

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/subcycle/subcycle/internal/types"
)

// StaticDecider approves or declines every settlement attempt
type StaticDecider struct {
	Result bool
}

func (d *StaticDecider) Approve(_ context.Context, _ string, _ decimal.Decimal, _ types.PaymentMethod) bool {
	return d.Result
}

// DeciderFunc adapts a function to the gateway decision interface, for tests
// that vary the outcome per invoice.
type DeciderFunc func(ctx context.Context, invoiceID string, amount decimal.Decimal, method types.PaymentMethod) bool

func (f DeciderFunc) Approve(ctx context.Context, invoiceID string, amount decimal.Decimal, method types.PaymentMethod) bool {
	return f(ctx, invoiceID, amount, method)
}
