// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

/*
Package keyval defines the durable key-value namespace the session flow
persists into, the server-side stand-in for the browser's local storage.

Contract:

  - Get returns the stored string or [ErrNotFound]; it never expires entries.
  - Set and Remove mutate single keys.
  - SetMany and RemoveMany mutate a group of keys atomically. The session
    pair (token + current user) must never be observable half-written, so
    every pair mutation goes through the Many variants.

Implementations:

  - Redis (production): process-independent, survives restarts.
  - Memory (tests): mutex-guarded map with identical semantics.
*/
package keyval

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Store.Get] when a key has no value.
var ErrNotFound = errors.New("keyval: key not found")

// Store is the persistence collaborator of the auth flow.
//
// # Ownership
//
// The simulated auth backend is the sole writer of this namespace; readers
// only ever consume the auth state machine's derived fields. This keeps the
// store free of write-write races without any coordination of its own.
type Store interface {
	// Get returns the value stored under key, or [ErrNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// SetMany stores all pairs atomically: either every key is written or
	// none is.
	SetMany(ctx context.Context, pairs map[string]string) error

	// RemoveMany deletes all keys atomically. Absent keys are ignored.
	RemoveMany(ctx context.Context, keys ...string) error
}
