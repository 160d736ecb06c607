// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osanchez/bitacora/internal/auth"
)

func TestInitialState(t *testing.T) {
	state := auth.InitialState()

	assert.True(t, state.Loading, "machine must boot in the loading state")
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Error)
}

func TestReduce(t *testing.T) {
	user := &auth.User{ID: "u-1", Email: "ana@ejemplo.com"}

	testCases := []struct {
		name     string
		current  auth.State
		action   auth.Action
		expected auth.State
	}{
		{
			name:     "loading marks in-flight and clears previous error",
			current:  auth.State{Error: "Invalid credentials"},
			action:   auth.Action{Kind: auth.ActionLoading},
			expected: auth.State{Loading: true},
		},
		{
			name:     "success establishes the session",
			current:  auth.State{Loading: true},
			action:   auth.Action{Kind: auth.ActionSuccess, User: user},
			expected: auth.State{IsAuthenticated: true, User: user},
		},
		{
			name:     "error clears user and authentication",
			current:  auth.State{IsAuthenticated: true, User: user, Loading: true},
			action:   auth.Action{Kind: auth.ActionError, Message: "Invalid credentials"},
			expected: auth.State{Error: "Invalid credentials"},
		},
		{
			name:     "logout clears everything",
			current:  auth.State{IsAuthenticated: true, User: user, Error: "stale"},
			action:   auth.Action{Kind: auth.ActionLogout},
			expected: auth.State{},
		},
		{
			name:    "set user authenticates with the restored user",
			current: auth.State{Loading: true},
			action:  auth.Action{Kind: auth.ActionSetUser, User: user},
			expected: auth.State{
				IsAuthenticated: true,
				User:            user,
			},
		},
		{
			name:    "set user leaves a lingering error alone",
			current: auth.State{IsAuthenticated: true, User: user, Error: "stale"},
			action:  auth.Action{Kind: auth.ActionSetUser, User: &auth.User{ID: "u-2"}},
			expected: auth.State{
				IsAuthenticated: true,
				User:            &auth.User{ID: "u-2"},
				Error:           "stale",
			},
		},
		{
			name:     "clear error drops the error only",
			current:  auth.State{IsAuthenticated: true, User: user, Error: "stale"},
			action:   auth.Action{Kind: auth.ActionClearError},
			expected: auth.State{IsAuthenticated: true, User: user},
		},
		{
			name:     "unknown action leaves the state untouched",
			current:  auth.State{IsAuthenticated: true, User: user},
			action:   auth.Action{Kind: auth.ActionKind("NOPE")},
			expected: auth.State{IsAuthenticated: true, User: user},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			next := auth.Reduce(testCase.current, testCase.action)
			assert.Equal(t, testCase.expected, next)
		})
	}
}

func TestReduceIsPure(t *testing.T) {
	current := auth.State{Error: "stale"}

	_ = auth.Reduce(current, auth.Action{Kind: auth.ActionClearError})

	assert.Equal(t, "stale", current.Error, "input state must not be mutated")
}
