// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package auth

import "time"

// # Simulated Backend Timing
//
// The backend is a stand-in for a remote API, so every operation carries a
// fixed artificial latency to keep the loading states of the front-end
// honest. Tests run with a zero profile.

const (
	// LoginLatency is the simulated round-trip of a login call.
	LoginLatency = 1000 * time.Millisecond

	// RegisterLatency is the simulated round-trip of a registration call.
	RegisterLatency = 1500 * time.Millisecond

	// ProfileLatency is the simulated round-trip of a profile fetch.
	ProfileLatency = 800 * time.Millisecond
)

// # Directory Defaults

const (
	// DefaultRoleName is assigned to newly registered users.
	DefaultRoleName = "Usuario"

	// SeedRoleName is the role of the seeded demo account.
	SeedRoleName = "Usuario Premium"

	// DefaultCountryName is assigned when registration omits a country.
	DefaultCountryName = "Perú"
)

// # Seed Account
//
// The directory is lazily initialized with one demo record on first access,
// so a fresh deployment is immediately usable.

const (
	SeedEmail    = "juan@ejemplo.com"
	SeedUserName = "juanperez"
	SeedPassword = "password123"
)
