package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreGetPutDelete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "invoice:missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Put(ctx, "invoice:i1", []byte(`{"id":"i1"}`), nil))

	val, found, err := store.Get(ctx, "invoice:i1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`{"id":"i1"}`), val)

	require.NoError(t, store.Delete(ctx, "invoice:i1"))
	_, found, err = store.Get(ctx, "invoice:i1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestInMemoryStoreListByPrefix(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "retry:inv2", []byte{}, nil))
	require.NoError(t, store.Put(ctx, "retry:inv1", []byte{}, nil))
	require.NoError(t, store.Put(ctx, "invoice:inv1", []byte("{}"), nil))

	keys, err := store.List(ctx, "retry:")
	require.NoError(t, err)
	require.Equal(t, []string{"retry:inv1", "retry:inv2"}, keys)
}

func TestInMemoryStoreCopiesValues(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	buf := []byte(`{"id":"c1"}`)
	require.NoError(t, store.Put(ctx, "customer:c1", buf, nil))
	buf[0] = 'X'

	val, found, err := store.Get(ctx, "customer:c1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, byte('{'), val[0])
}
