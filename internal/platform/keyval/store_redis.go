// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package keyval

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements [Store] on top of a Redis database.
//
// # Why Redis?
//
// The namespace must be process-independent (the session survives restarts,
// like local storage survives reloads) and synchronous in feel. Redis gives
// both, plus MSET/DEL for the atomic pair writes the session invariant needs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the value stored under key, or [ErrNotFound].
func (store *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyval_redis_get_failed: %w", err)
	}
	return value, nil
}

// Set stores value under key with no expiry.
func (store *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := store.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("keyval_redis_set_failed: %w", err)
	}
	return nil
}

// Remove deletes key. Absent keys are not an error.
func (store *RedisStore) Remove(ctx context.Context, key string) error {
	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("keyval_redis_remove_failed: %w", err)
	}
	return nil
}

// SetMany stores all pairs in a single MSET, which Redis applies atomically.
func (store *RedisStore) SetMany(ctx context.Context, pairs map[string]string) error {
	if len(pairs) == 0 {
		return nil
	}

	flat := make([]interface{}, 0, len(pairs)*2)
	for key, value := range pairs {
		flat = append(flat, key, value)
	}

	if err := store.client.MSet(ctx, flat...).Err(); err != nil {
		return fmt.Errorf("keyval_redis_setmany_failed: %w", err)
	}
	return nil
}

// RemoveMany deletes all keys in a single variadic DEL.
func (store *RedisStore) RemoveMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := store.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("keyval_redis_removemany_failed: %w", err)
	}
	return nil
}
