// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osanchez/bitacora/internal/platform/sec"
)

// Directory defines the data access contract for the mock user directory.
//
// # Semantics
//
// The directory is an ordered, append-only collection of user records,
// lazily initialized with one seed record on first access. It is never
// pruned. Uniqueness of email and user_name is enforced by the backend
// service before Append; implementations only store.
//
// # Implementations
//
//   - Key-value (default): the whole list serialized under one key, the
//     faithful analog of the original local-storage directory.
//   - PostgreSQL (optional): one row per user, for deployments that outgrow
//     the serialized list.
type Directory interface {
	// List returns every record in insertion order, seeding first if the
	// directory has never been accessed.
	List(ctx context.Context) ([]User, error)

	// FindByEmail returns the record with the given email, or nil if absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUserName returns the record with the given user_name, or nil if absent.
	FindByUserName(ctx context.Context, userName string) (*User, error)

	// Append adds a brand-new record at the end of the directory.
	Append(ctx context.Context, user *User) error

	// Update replaces the record with a matching ID.
	// Returns [apperr.NotFound] if no such record exists.
	Update(ctx context.Context, user *User) error
}

// SeedUser builds the demo record the directory is lazily initialized with.
//
// The password is bcrypt-hashed at seed time so the stored list never
// contains plain text.
func SeedUser() (*User, error) {
	hash, err := sec.HashPassword(SeedPassword)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:               NewID(),
		Name:             "Juan",
		PaternalLastname: "Pérez",
		MaternalLastname: "García",
		Email:            SeedEmail,
		Phone:            "+51 987 654 321",
		UserName:         SeedUserName,
		PasswordHash:     hash,
		DocumentNumber:   "87654321",
		Role:             Role{Name: SeedRoleName},
		Country:          Country{Name: DefaultCountryName},
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// NewID synthesizes a directory record ID.
//
// UUIDv7 keeps IDs time-sortable, which preserves the insertion order of
// the directory even across backends.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
