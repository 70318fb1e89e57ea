package repository

import (
	"context"
	"testing"

	domrepo "PriceBoard/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceStoreRoundTrip(t *testing.T) {
	store := NewSQLitePreferenceStore(newTestClient(t))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "user-1", `{"theme":"dark"}`, "2024-01-05T00:00:00Z"))

	payload, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, payload)
}

func TestPreferenceStoreUpsertOverwrites(t *testing.T) {
	store := NewSQLitePreferenceStore(newTestClient(t))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "user-1", `{"theme":"dark"}`, "2024-01-05T00:00:00Z"))
	require.NoError(t, store.Upsert(ctx, "user-1", `{"theme":"light"}`, "2024-01-06T00:00:00Z"))

	payload, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"light"}`, payload)
}

func TestPreferenceStoreGetMissing(t *testing.T) {
	store := NewSQLitePreferenceStore(newTestClient(t))

	_, err := store.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, domrepo.ErrNotFound)
}

func TestPreferenceStoreDeleteIsIdempotent(t *testing.T) {
	store := NewSQLitePreferenceStore(newTestClient(t))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "user-1", `{}`, "2024-01-05T00:00:00Z"))
	require.NoError(t, store.Delete(ctx, "user-1"))

	_, err := store.Get(ctx, "user-1")
	require.ErrorIs(t, err, domrepo.ErrNotFound)

	// Deleting a missing record still succeeds.
	require.NoError(t, store.Delete(ctx, "user-1"))
}

func TestPreferenceStoreIsolatedPerUser(t *testing.T) {
	store := NewSQLitePreferenceStore(newTestClient(t))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "user-1", `{"a":1}`, "2024-01-05T00:00:00Z"))
	require.NoError(t, store.Upsert(ctx, "user-2", `{"b":2}`, "2024-01-05T00:00:00Z"))
	require.NoError(t, store.Delete(ctx, "user-1"))

	payload, err := store.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, payload)
}
