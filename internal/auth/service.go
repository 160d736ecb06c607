// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/osanchez/bitacora/internal/platform/apperr"
	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/internal/platform/keyval"
	"github.com/osanchez/bitacora/internal/platform/sec"
)

// Tokens issues and verifies session tokens. Implemented by [sec.TokenService].
type Tokens interface {
	Mint(userID, username string) (string, error)
	Parse(tokenString string) (*sec.SessionClaims, error)
}

// LatencyProfile configures the artificial round-trip delay of each
// simulated backend operation. The zero value disables delays (tests).
type LatencyProfile struct {
	Login    time.Duration
	Register time.Duration
	Profile  time.Duration
}

// DefaultLatencyProfile returns the production delays of the simulated backend.
func DefaultLatencyProfile() LatencyProfile {
	return LatencyProfile{
		Login:    LoginLatency,
		Register: RegisterLatency,
		Profile:  ProfileLatency,
	}
}

// Service is the simulated authentication backend.
//
// # Behavior
//
// Each operation sleeps for its configured latency, answers against the
// user directory, and persists or clears the session pair in the key-value
// namespace. The session pair (token + current user) is always written and
// cleared atomically; a partial pair reads as "logged out".
type Service struct {
	directory Directory
	store     keyval.Store
	tokens    Tokens
	latency   LatencyProfile
	logger    *slog.Logger
}

// NewService creates the simulated backend.
func NewService(directory Directory, store keyval.Store, tokens Tokens, latency LatencyProfile, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		store:     store,
		tokens:    tokens,
		latency:   latency,
		logger:    logger,
	}
}

// Login authenticates the credentials against the directory and persists
// the resulting session pair.
//
// Unknown email and wrong password produce the same error so the response
// never discloses which part failed.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	if err := pause(ctx, s.latency.Login); err != nil {
		return nil, err
	}

	user, err := s.directory.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !sec.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Mint(user.ID, user.UserName)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("token_mint_failed: %w", err))
	}

	if err := s.persistSession(ctx, token, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))
	return &Session{Token: token, User: user}, nil
}

// Register enrolls a new member, appends it to the directory, and logs it
// in immediately (token + session pair persisted).
//
// Uniqueness checks run before Append: a rejected registration leaves the
// directory untouched.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := pause(ctx, s.latency.Register); err != nil {
		return nil, err
	}

	existing, err := s.directory.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	existing, err = s.directory.FindByUserName(ctx, input.UserName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("password_hash_failed: %w", err))
	}

	country := input.Country
	if country == "" {
		country = DefaultCountryName
	}

	user := &User{
		ID:               NewID(),
		Name:             input.Name,
		PaternalLastname: input.PaternalLastname,
		MaternalLastname: input.MaternalLastname,
		Email:            input.Email,
		Phone:            input.Phone,
		UserName:         input.UserName,
		PasswordHash:     hash,
		DocumentNumber:   input.DocumentNumber,
		Role:             Role{Name: DefaultRoleName},
		Country:          Country{Name: country},
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.directory.Append(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Mint(user.ID, user.UserName)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("token_mint_failed: %w", err))
	}

	if err := s.persistSession(ctx, token, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return &RegisterResult{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	}, nil
}

// Logout clears the persisted session pair. Clearing an absent session is
// not an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.RemoveMany(ctx, constants.KeyToken, constants.KeyCurrentUser); err != nil {
		return fmt.Errorf("session_clear_failed: %w", err)
	}
	return nil
}

// CheckAuth restores the session from the persisted pair without mutating
// anything.
//
// A complete, decodable pair with a verifiable token yields a session. An
// absent, partial, or corrupt pair, or a token this process never minted,
// yields (nil, nil): logged out, no repair attempted. Only a real store
// failure returns an error.
func (s *Service) CheckAuth(ctx context.Context) (*Session, error) {
	token, err := s.store.Get(ctx, constants.KeyToken)
	if errors.Is(err, keyval.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session_read_failed: %w", err)
	}

	if _, err := s.tokens.Parse(token); err != nil {
		s.logger.WarnContext(ctx, "unverifiable session token, ignoring", slog.String("error", err.Error()))
		return nil, nil
	}

	rawUser, err := s.store.Get(ctx, constants.KeyCurrentUser)
	if errors.Is(err, keyval.ErrNotFound) {
		// Half a pair. Treat as logged out; leave the stale key alone.
		s.logger.WarnContext(ctx, "partial session pair found, ignoring")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session_read_failed: %w", err)
	}

	var record storedUser
	if err := json.Unmarshal([]byte(rawUser), &record); err != nil {
		s.logger.WarnContext(ctx, "corrupt session record, ignoring", slog.String("error", err.Error()))
		return nil, nil
	}

	user := record.toUser()
	return &Session{Token: token, User: &user}, nil
}

// Profile returns the fresh directory record of the current session's user.
func (s *Service) Profile(ctx context.Context) (*User, error) {
	if err := pause(ctx, s.latency.Profile); err != nil {
		return nil, err
	}

	session, err := s.CheckAuth(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.Unauthorized("No active session")
	}

	user, err := s.directory.FindByEmail(ctx, session.User.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// The session references a user no longer in the directory.
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// RefreshSessionUser rewrites the persisted user entry of an established
// session, keeping it in lockstep with directory updates. A missing session
// is a no-op.
func (s *Service) RefreshSessionUser(ctx context.Context, user *User) error {
	_, err := s.store.Get(ctx, constants.KeyToken)
	if errors.Is(err, keyval.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session_read_failed: %w", err)
	}

	encoded, err := json.Marshal(toStored(user))
	if err != nil {
		return apperr.Internal(fmt.Errorf("session_encode_failed: %w", err))
	}
	if err := s.store.Set(ctx, constants.KeyCurrentUser, string(encoded)); err != nil {
		return fmt.Errorf("session_persist_failed: %w", err)
	}
	return nil
}

// persistSession writes the token and the serialized user as one atomic pair.
func (s *Service) persistSession(ctx context.Context, token string, user *User) error {
	encoded, err := json.Marshal(toStored(user))
	if err != nil {
		return apperr.Internal(fmt.Errorf("session_encode_failed: %w", err))
	}

	pairs := map[string]string{
		constants.KeyToken:       token,
		constants.KeyCurrentUser: string(encoded),
	}
	if err := s.store.SetMany(ctx, pairs); err != nil {
		return fmt.Errorf("session_persist_failed: %w", err)
	}
	return nil
}

// pause sleeps for the artificial latency, honoring context cancellation.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
