// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package keyval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osanchez/bitacora/internal/platform/keyval"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := keyval.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, keyval.ErrNotFound)

	require.NoError(t, store.Set(ctx, "token", "abc"))

	value, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)

	require.NoError(t, store.Remove(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, keyval.ErrNotFound)

	// Removing an absent key is not an error.
	assert.NoError(t, store.Remove(ctx, "token"))
}

func TestMemoryStoreBatchOperations(t *testing.T) {
	store := keyval.NewMemoryStore()
	ctx := context.Background()

	pairs := map[string]string{"token": "abc", "currentUser": "{}"}
	require.NoError(t, store.SetMany(ctx, pairs))

	for key, expected := range pairs {
		value, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, expected, value)
	}

	require.NoError(t, store.RemoveMany(ctx, "token", "currentUser"))

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, keyval.ErrNotFound)
	_, err = store.Get(ctx, "currentUser")
	assert.ErrorIs(t, err, keyval.ErrNotFound)
}
