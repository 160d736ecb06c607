// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/osanchez/bitacora/internal/platform/apperr"
)

// Manager owns the process-wide auth [State] and drives it through the
// simulated backend.
//
// # Error Propagation
//
// Login and Register propagate failures on two channels at once: the error
// message lands in the state (for anyone observing it) AND the error is
// returned to the caller (for the HTTP response). Both carry the same
// message.
type Manager struct {
	mu      sync.RWMutex
	state   State
	service *Service
	logger  *slog.Logger
}

// NewManager creates a manager in the initial (loading) state.
func NewManager(service *Service, logger *slog.Logger) *Manager {
	return &Manager{
		state:   InitialState(),
		service: service,
		logger:  logger,
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsLoading reports whether a session restore or auth call is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Loading
}

// IsAuthenticated reports whether a session is currently established.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.IsAuthenticated
}

// Login runs the backend login and folds the outcome into the state.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*Session, error) {
	m.dispatch(Action{Kind: ActionLoading})

	session, err := m.service.Login(ctx, creds)
	if err != nil {
		m.dispatch(Action{Kind: ActionError, Message: errorMessage(err)})
		return nil, err
	}

	m.dispatch(Action{Kind: ActionSuccess, User: session.User})
	return session, nil
}

// Register runs the backend registration and folds the outcome into the
// state. A successful registration is an auto-login.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	m.dispatch(Action{Kind: ActionLoading})

	result, err := m.service.Register(ctx, input)
	if err != nil {
		m.dispatch(Action{Kind: ActionError, Message: errorMessage(err)})
		return nil, err
	}

	m.dispatch(Action{Kind: ActionSuccess, User: result.User})
	return result, nil
}

// Logout clears the persisted session and the state.
//
// Best effort: even if clearing the store fails, the state still transitions
// to logged out so the process never stays authenticated against a session
// it tried to discard.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.service.Logout(ctx); err != nil {
		m.logger.WarnContext(ctx, "session clear failed", slog.String("error", err.Error()))
	}
	m.dispatch(Action{Kind: ActionLogout})
}

// CheckAuth restores the session from the persisted pair: LOADING while the
// pair is examined, then SET_USER on a found session or LOGOUT otherwise.
//
// Any failure resolves to logged out rather than an error state: session
// restore is a boot concern and must always leave the machine settled.
func (m *Manager) CheckAuth(ctx context.Context) {
	m.dispatch(Action{Kind: ActionLoading})

	session, err := m.service.CheckAuth(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "session restore failed", slog.String("error", err.Error()))
		m.dispatch(Action{Kind: ActionLogout})
		return
	}
	if session == nil {
		m.dispatch(Action{Kind: ActionLogout})
		return
	}

	m.dispatch(Action{Kind: ActionSetUser, User: session.User})
}

// SetUser propagates an updated user into the state, used after profile
// updates. Only callers holding an active session may use it: SET_USER
// asserts authentication.
func (m *Manager) SetUser(user *User) {
	m.dispatch(Action{Kind: ActionSetUser, User: user})
}

// ClearError drops a lingering error from the state.
func (m *Manager) ClearError() {
	m.dispatch(Action{Kind: ActionClearError})
}

// Service exposes the underlying simulated backend.
func (m *Manager) Service() *Service {
	return m.service
}

func (m *Manager) dispatch(action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, action)
}

// errorMessage extracts the user-facing message of an error for the state.
func errorMessage(err error) string {
	if appErr := apperr.As(err); appErr != nil {
		return appErr.Message
	}
	return "Something went wrong"
}
