// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/osanchez/bitacora/internal/platform/apperr"
	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/keyval"
)

// storedUser is the serialized directory representation of a [User].
//
// The public entity omits the password hash from JSON; the stored form must
// keep it, under the historical "password" field name of the persisted
// directory format.
type storedUser struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	PaternalLastname string  `json:"paternal_lastname"`
	MaternalLastname string  `json:"maternal_lastname"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	UserName         string  `json:"user_name"`
	PasswordHash     string  `json:"password"`
	DocumentNumber   string  `json:"document_number,omitempty"`
	Role             Role    `json:"role"`
	Country          Country `json:"country"`
	CreatedAt        string  `json:"created_at"`
}

// KeyvalDirectory implements [Directory] as a single serialized list under
// the directory key of the durable key-value namespace.
//
// # Concurrency
//
// Append and Update are read-modify-write cycles over one key. The backend
// service is the only writer of the namespace, but the internal mutex keeps
// concurrent HTTP requests from interleaving a cycle.
type KeyvalDirectory struct {
	mu    sync.Mutex
	store keyval.Store
}

// NewKeyvalDirectory creates a [Directory] persisted in the given key-value store.
func NewKeyvalDirectory(store keyval.Store) *KeyvalDirectory {
	return &KeyvalDirectory{store: store}
}

// List returns every record in insertion order, seeding on first access.
func (directory *KeyvalDirectory) List(ctx context.Context) ([]User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	return directory.load(ctx)
}

// FindByEmail returns the record with the given email, or nil if absent.
func (directory *KeyvalDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	return directory.find(ctx, func(user *User) bool { return user.Email == email })
}

// FindByUserName returns the record with the given user_name, or nil if absent.
func (directory *KeyvalDirectory) FindByUserName(ctx context.Context, userName string) (*User, error) {
	return directory.find(ctx, func(user *User) bool { return user.UserName == userName })
}

// Append adds a record at the end of the directory and persists the whole list.
func (directory *KeyvalDirectory) Append(ctx context.Context, user *User) error {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	users, err := directory.load(ctx)
	if err != nil {
		return err
	}

	users = append(users, *user)
	return directory.save(ctx, users)
}

// Update replaces the record with a matching ID.
func (directory *KeyvalDirectory) Update(ctx context.Context, user *User) error {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	users, err := directory.load(ctx)
	if err != nil {
		return err
	}

	for index := range users {
		if users[index].ID == user.ID {
			users[index] = *user
			return directory.save(ctx, users)
		}
	}

	return apperr.NotFound("User")
}

// find loads the list and returns the first record matching the predicate.
func (directory *KeyvalDirectory) find(ctx context.Context, match func(*User) bool) (*User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	users, err := directory.load(ctx)
	if err != nil {
		return nil, err
	}

	for index := range users {
		if match(&users[index]) {
			found := users[index]
			return &found, nil
		}
	}

	return nil, nil
}

// load reads and decodes the serialized directory, seeding it if absent.
// Callers must hold the mutex.
func (directory *KeyvalDirectory) load(ctx context.Context) ([]User, error) {
	raw, err := directory.store.Get(ctx, constants.KeyMockUsers)
	if errors.Is(err, keyval.ErrNotFound) {
		return directory.seed(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("directory_load_failed: %w", err)
	}

	var stored []storedUser
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// A directory that no longer decodes is persistence corruption.
		return nil, apperr.Internal(fmt.Errorf("directory_corrupt: %w", err))
	}

	users := make([]User, 0, len(stored))
	for _, record := range stored {
		users = append(users, record.toUser())
	}
	return users, nil
}

// save encodes and persists the full directory list. Callers must hold the mutex.
func (directory *KeyvalDirectory) save(ctx context.Context, users []User) error {
	stored := make([]storedUser, 0, len(users))
	for index := range users {
		stored = append(stored, toStored(&users[index]))
	}

	encoded, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("directory_encode_failed: %w", err)
	}

	if err := directory.store.Set(ctx, constants.KeyMockUsers, string(encoded)); err != nil {
		return fmt.Errorf("directory_save_failed: %w", err)
	}
	return nil
}

// seed writes the initial single-record directory. Callers must hold the mutex.
func (directory *KeyvalDirectory) seed(ctx context.Context) ([]User, error) {
	seedRecord, err := SeedUser()
	if err != nil {
		return nil, fmt.Errorf("directory_seed_failed: %w", err)
	}

	users := []User{*seedRecord}
	if err := directory.save(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// # Serialization mapping

func toStored(user *User) storedUser {
	return storedUser{
		ID:               user.ID,
		Name:             user.Name,
		PaternalLastname: user.PaternalLastname,
		MaternalLastname: user.MaternalLastname,
		Email:            user.Email,
		Phone:            user.Phone,
		UserName:         user.UserName,
		PasswordHash:     user.PasswordHash,
		DocumentNumber:   user.DocumentNumber,
		Role:             user.Role,
		Country:          user.Country,
		CreatedAt:        user.CreatedAt.Format(timeLayout),
	}
}

func (record storedUser) toUser() User {
	return User{
		ID:               record.ID,
		Name:             record.Name,
		PaternalLastname: record.PaternalLastname,
		MaternalLastname: record.MaternalLastname,
		Email:            record.Email,
		Phone:            record.Phone,
		UserName:         record.UserName,
		PasswordHash:     record.PasswordHash,
		DocumentNumber:   record.DocumentNumber,
		Role:             record.Role,
		Country:          record.Country,
		CreatedAt:        parseStoredTime(record.CreatedAt),
	}
}
