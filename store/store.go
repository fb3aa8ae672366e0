// Package store provides the credential store abstraction and the
// authentication operations built on top of it.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user exists for a username.
	ErrNotFound = errors.New("user not found")
	// ErrExists is returned when creating a user whose username is taken.
	ErrExists = errors.New("user already exists")
	// ErrUnavailable is returned when the backing store cannot be reached.
	// Callers must treat it as distinct from "no match".
	ErrUnavailable = errors.New("store unavailable")
	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// username or a wrong password. The two cases are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a credential record. Passwords are stored as Argon2id PHC
// strings, never in cleartext.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Store defines the credential store capability. Implementations exist
// for PostgreSQL, BBolt and in-memory backing storage and are selected
// at startup by configuration.
type Store interface {
	// Ensure idempotently creates the backing schema. Safe to call on
	// every process start.
	Ensure(ctx context.Context) error
	// FindUser returns the user with the given username, or ErrNotFound.
	FindUser(ctx context.Context, username string) (*User, error)
	// CreateUser inserts a new user with an already-hashed password.
	// Returns ErrExists if the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	// Close releases the backing resources.
	Close() error
}
