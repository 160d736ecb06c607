// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

// Package auth implements the session/authentication core of Bitacora:
// the user directory, the simulated remote backend, and the process-wide
// auth state machine the route guards observe.
//
// # Architecture
//
// There is no real auth server. The simulated backend answers with fixed
// artificial latency against a seeded user directory, persisting the
// session pair into a durable key-value namespace, the same contract a
// real backend would eventually fulfill.
package auth

import (
	"time"
)

// Role is the display role attached to a user profile.
//
// It is descriptive, not an authorization level: route guards gate on
// session presence only.
type Role struct {
	Name string `json:"name"`
}

// Country is the user's country of residence.
type Country struct {
	Name string `json:"name"`
}

// User represents a registered member of the Bitacora platform.
//
// # Rules
//   - Email is unique across the directory.
//   - UserName is unique across the directory.
//   - PasswordHash is generated via bcrypt exclusively by the backend service.
type User struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	PaternalLastname string  `json:"paternal_lastname"`
	MaternalLastname string  `json:"maternal_lastname"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	UserName         string  `json:"user_name"`
	PasswordHash     string  `json:"-"` // Explicitly omitted from JSON for security.
	DocumentNumber   string  `json:"document_number,omitempty"`
	Role             Role    `json:"role"`
	Country          Country `json:"country"`

	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the user's display name assembled from its parts.
func (u *User) FullName() string {
	name := u.Name
	if u.PaternalLastname != "" {
		name += " " + u.PaternalLastname
	}
	if u.MaternalLastname != "" {
		name += " " + u.MaternalLastname
	}
	return name
}

// Credentials is a login attempt: exact email plus the plain-text password.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name             string
	PaternalLastname string
	MaternalLastname string
	Email            string
	Phone            string
	UserName         string
	Password         string
	DocumentNumber   string
	Country          string
}

// Session is the pairing of a bearer token and the user it authenticates.
//
// It is persisted as two independent entries (token, current user) that are
// always written and cleared together; a partial pair is corrupt state and
// reads as "logged out".
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterResult is the response of a successful registration (auto-login).
type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}
