package gateway

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/subcycle/subcycle/internal/config"
	"github.com/subcycle/subcycle/internal/types"
	"github.com/shopspring/decimal"
)

// Decider is the pluggable payment decision point. The production
// implementation is a seeded random simulation standing in for a real payment
// gateway, tests inject deterministic outcomes.
type Decider interface {
	// Approve reports whether a settlement attempt for the invoice succeeds
	Approve(ctx context.Context, invoiceID string, amount decimal.Decimal, method types.PaymentMethod) bool
}

type simulator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	successRate float64
}

// NewSimulator returns a Decider approving attempts with the given
// probability. A zero seed seeds from the clock.
func NewSimulator(successRate float64, seed int64) Decider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &simulator{
		rng:         rand.New(rand.NewSource(seed)),
		successRate: successRate,
	}
}

// NewSimulatorFromConfig builds the simulator from the payments config
func NewSimulatorFromConfig(cfg *config.Configuration) Decider {
	return NewSimulator(cfg.Payments.SuccessRate, cfg.Payments.Seed)
}

func (s *simulator) Approve(_ context.Context, _ string, _ decimal.Decimal, _ types.PaymentMethod) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.successRate
}
