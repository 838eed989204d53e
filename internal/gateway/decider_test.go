package gateway

import (
	"context"
	"testing"

	"github.com/subcycle/subcycle/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSimulatorExtremes(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	always := NewSimulator(1.0, 42)
	never := NewSimulator(0.0, 42)

	for i := 0; i < 100; i++ {
		require.True(t, always.Approve(ctx, "inv_1", amount, types.PaymentMethodCreditCard))
		require.False(t, never.Approve(ctx, "inv_1", amount, types.PaymentMethodCreditCard))
	}
}

func TestSimulatorDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	a := NewSimulator(0.5, 1234)
	b := NewSimulator(0.5, 1234)

	for i := 0; i < 50; i++ {
		require.Equal(t,
			a.Approve(ctx, "inv_1", amount, types.PaymentMethodCreditCard),
			b.Approve(ctx, "inv_1", amount, types.PaymentMethodCreditCard),
		)
	}
}
