// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osanchez/bitacora/internal/platform/apperr"
)

// timeLayout is the serialized timestamp format of directory records,
// shared by the key-value backend.
const timeLayout = time.RFC3339Nano

// parseStoredTime decodes a serialized timestamp, tolerating records that
// predate timestamping (zero value on failure).
func parseStoredTime(raw string) time.Time {
	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// PostgresDirectory implements [Directory] with one row per user, ordered
// by an insertion sequence.
//
// # Usage
//
// Optional backend for deployments where the serialized key-value list is
// not enough; selected when DATABASE_URL is configured.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a [Directory] backed by a PostgreSQL pool.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

const directoryColumns = `
	id, name, paternal_lastname, maternal_lastname, email, phone,
	user_name, password_hash, document_number, role_name, country_name, created_at`

// List returns every record in insertion order, seeding on first access.
func (directory *PostgresDirectory) List(ctx context.Context) ([]User, error) {
	if err := directory.ensureSeed(ctx); err != nil {
		return nil, err
	}

	rows, err := directory.pool.Query(ctx,
		`SELECT `+directoryColumns+` FROM directory_users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("directory_pg_list_failed: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory_pg_list_failed: %w", err)
	}

	return users, nil
}

// FindByEmail returns the record with the given email, or nil if absent.
func (directory *PostgresDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	return directory.findOne(ctx, "email", email)
}

// FindByUserName returns the record with the given user_name, or nil if absent.
func (directory *PostgresDirectory) FindByUserName(ctx context.Context, userName string) (*User, error) {
	return directory.findOne(ctx, "user_name", userName)
}

// Append inserts a record at the end of the directory.
func (directory *PostgresDirectory) Append(ctx context.Context, user *User) error {
	if err := directory.ensureSeed(ctx); err != nil {
		return err
	}
	return directory.insert(ctx, user)
}

// Update replaces the record with a matching ID.
func (directory *PostgresDirectory) Update(ctx context.Context, user *User) error {
	tag, err := directory.pool.Exec(ctx, `
		UPDATE directory_users SET
			name = $2, paternal_lastname = $3, maternal_lastname = $4,
			email = $5, phone = $6, user_name = $7, password_hash = $8,
			document_number = $9, role_name = $10, country_name = $11
		WHERE id = $1`,
		user.ID, user.Name, user.PaternalLastname, user.MaternalLastname,
		user.Email, user.Phone, user.UserName, user.PasswordHash,
		user.DocumentNumber, user.Role.Name, user.Country.Name,
	)
	if err != nil {
		return fmt.Errorf("directory_pg_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// findOne queries a single record by an exact column match.
func (directory *PostgresDirectory) findOne(ctx context.Context, column, value string) (*User, error) {
	if err := directory.ensureSeed(ctx); err != nil {
		return nil, err
	}

	row := directory.pool.QueryRow(ctx,
		`SELECT `+directoryColumns+` FROM directory_users WHERE `+column+` = $1`, value)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// insert appends one row; the seq sequence preserves insertion order.
func (directory *PostgresDirectory) insert(ctx context.Context, user *User) error {
	_, err := directory.pool.Exec(ctx, `
		INSERT INTO directory_users (
			id, name, paternal_lastname, maternal_lastname, email, phone,
			user_name, password_hash, document_number, role_name, country_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		user.ID, user.Name, user.PaternalLastname, user.MaternalLastname,
		user.Email, user.Phone, user.UserName, user.PasswordHash,
		user.DocumentNumber, user.Role.Name, user.Country.Name, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("directory_pg_insert_failed: %w", err)
	}
	return nil
}

// ensureSeed lazily initializes an empty directory with the demo record.
func (directory *PostgresDirectory) ensureSeed(ctx context.Context) error {
	var count int
	if err := directory.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM directory_users`).Scan(&count); err != nil {
		return fmt.Errorf("directory_pg_seed_check_failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	seedRecord, err := SeedUser()
	if err != nil {
		return fmt.Errorf("directory_pg_seed_failed: %w", err)
	}
	return directory.insert(ctx, seedRecord)
}

// scanUser maps one row onto a [User].
func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Name, &user.PaternalLastname, &user.MaternalLastname,
		&user.Email, &user.Phone, &user.UserName, &user.PasswordHash,
		&user.DocumentNumber, &user.Role.Name, &user.Country.Name, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("directory_pg_scan_failed: %w", err)
	}
	return &user, nil
}
