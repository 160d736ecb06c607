// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

// ActionKind enumerates the transitions of the auth state machine.
type ActionKind string

const (
	ActionLoading    ActionKind = "LOADING"
	ActionSuccess    ActionKind = "SUCCESS"
	ActionError      ActionKind = "ERROR"
	ActionLogout     ActionKind = "LOGOUT"
	ActionSetUser    ActionKind = "SET_USER"
	ActionClearError ActionKind = "CLEAR_ERROR"
)

// Action is one input to [Reduce]. User accompanies SUCCESS and SET_USER;
// Message accompanies ERROR.
type Action struct {
	Kind    ActionKind
	User    *User
	Message string
}

// State is the process-wide authentication snapshot the route guards observe.
type State struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	User            *User  `json:"user"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
}

// InitialState is the boot state: loading until the first session restore
// resolves, so guards never act on an unknown session.
func InitialState() State {
	return State{Loading: true}
}

// Reduce computes the next state from the current one and an action.
//
// # Transitions
//
//   - LOADING: in-flight marker; clears a previous error.
//   - SUCCESS: authenticated with the given user, loading and error cleared.
//   - ERROR: unauthenticated with the failure message, loading cleared.
//   - LOGOUT: everything cleared.
//   - SET_USER: authenticated with the given user, loading cleared; unlike
//     SUCCESS it leaves a lingering error alone. Issued by session restore
//     and profile propagation.
//   - CLEAR_ERROR: drops the error, everything else untouched.
//
// Unknown kinds return the state unchanged.
func Reduce(state State, action Action) State {
	switch action.Kind {
	case ActionLoading:
		state.Loading = true
		state.Error = ""
		return state

	case ActionSuccess:
		return State{
			IsAuthenticated: true,
			User:            action.User,
			Loading:         false,
		}

	case ActionError:
		return State{
			IsAuthenticated: false,
			User:            nil,
			Loading:         false,
			Error:           action.Message,
		}

	case ActionLogout:
		return State{}

	case ActionSetUser:
		state.IsAuthenticated = true
		state.User = action.User
		state.Loading = false
		return state

	case ActionClearError:
		state.Error = ""
		return state

	default:
		return state
	}
}
