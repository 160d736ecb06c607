// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package keyval

import (
	"context"
	"sync"
)

// MemoryStore implements [Store] with an in-process map.
//
// # Usage
//
// Intended for tests and local development without Redis. Not durable:
// contents vanish with the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates an empty in-memory [Store].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get returns the value stored under key, or [ErrNotFound].
func (store *MemoryStore) Get(_ context.Context, key string) (string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (store *MemoryStore) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[key] = value
	return nil
}

// Remove deletes key.
func (store *MemoryStore) Remove(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, key)
	return nil
}

// SetMany stores all pairs under a single lock acquisition.
func (store *MemoryStore) SetMany(_ context.Context, pairs map[string]string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for key, value := range pairs {
		store.entries[key] = value
	}
	return nil
}

// RemoveMany deletes all keys under a single lock acquisition.
func (store *MemoryStore) RemoveMany(_ context.Context, keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, key := range keys {
		delete(store.entries, key)
	}
	return nil
}
