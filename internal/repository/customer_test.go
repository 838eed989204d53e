package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/types"
)

func TestCustomerRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewInMemoryStore()
	repo := NewCustomerRepository(store, logger.L)

	c := &customer.Customer{
		ID:                    "cust_1",
		Name:                  "Ada Lovelace",
		Email:                 "ada@example.com",
		SubscriptionPlanID:    "plan_1",
		SubscriptionStatus:    types.SubscriptionStatusActive,
		SubscriptionStartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.Get(ctx, "cust_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.SubscriptionPlanID, got.SubscriptionPlanID)
	assert.True(t, got.SubscriptionStartDate.Equal(c.SubscriptionStartDate))

	// records persist under the customer key namespace
	_, found, err := store.Get(ctx, "customer:cust_1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCustomerRepositoryAbsentIsNil(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(kv.NewInMemoryStore(), logger.L)

	got, err := repo.Get(ctx, "cust_missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCustomerRepositoryUpdateOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(kv.NewInMemoryStore(), logger.L)

	c := &customer.Customer{ID: "cust_1", Name: "Before", Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, c))

	c.Name = "After"
	c.SubscriptionStatus = types.SubscriptionStatusCancelled
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.Get(ctx, "cust_1")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, types.SubscriptionStatusCancelled, got.SubscriptionStatus)
}

func TestRetryRepositoryMarkers(t *testing.T) {
	ctx := context.Background()
	repo := NewRetryRepository(kv.NewInMemoryStore(), 24*time.Hour, logger.L)

	require.NoError(t, repo.Schedule(ctx, "inv_b"))
	require.NoError(t, repo.Schedule(ctx, "inv_a"))
	// scheduling twice is an upsert
	require.NoError(t, repo.Schedule(ctx, "inv_a"))

	due, err := repo.ListDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"inv_a", "inv_b"}, due)

	require.NoError(t, repo.Clear(ctx, "inv_a"))
	// clearing an absent marker is a no-op
	require.NoError(t, repo.Clear(ctx, "inv_a"))

	due, err = repo.ListDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"inv_b"}, due)
}
