// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

// Package account implements the profile surface of Bitacora: reading the
// current member's record and applying profile edits.
package account

import (
	"context"
	"log/slog"

	"github.com/osanchez/bitacora/internal/auth"
)

// UpdateInput holds the editable profile fields. Email and user_name are
// identity fields and stay immutable after registration.
type UpdateInput struct {
	Name             string
	PaternalLastname string
	MaternalLastname string
	Phone            string
	Country          string
}

// Service coordinates profile reads and edits across the directory, the
// persisted session, and the auth state machine.
type Service struct {
	directory auth.Directory
	manager   *auth.Manager
	logger    *slog.Logger
}

// NewService creates the account service.
func NewService(directory auth.Directory, manager *auth.Manager, logger *slog.Logger) *Service {
	return &Service{directory: directory, manager: manager, logger: logger}
}

// Profile returns the fresh directory record of the current session's user.
// It carries the simulated profile-fetch latency of the backend.
func (s *Service) Profile(ctx context.Context) (*auth.User, error) {
	return s.manager.Service().Profile(ctx)
}

// UpdateProfile applies the edits to the directory record and propagates the
// updated user to the persisted session and the auth state, so all three
// views stay consistent.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateInput) (*auth.User, error) {
	user, err := s.manager.Service().Profile(ctx)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.PaternalLastname = input.PaternalLastname
	user.MaternalLastname = input.MaternalLastname
	user.Phone = input.Phone
	if input.Country != "" {
		user.Country = auth.Country{Name: input.Country}
	}

	if err := s.directory.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.manager.Service().RefreshSessionUser(ctx, user); err != nil {
		return nil, err
	}
	s.manager.SetUser(user)

	s.logger.InfoContext(ctx, "profile updated", slog.String("user_id", user.ID))
	return user, nil
}
