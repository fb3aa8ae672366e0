package store

import (
	"context"
	"fmt"
)

// Unavailable is a Store whose every operation reports ErrUnavailable.
// The server falls back to it when a backend cannot be opened at
// startup, so a missing store degrades lookups instead of halting the
// process.
type Unavailable struct {
	// Err is the underlying open failure, carried in returned errors
	// when set.
	Err error
}

var _ Store = Unavailable{}

func (u Unavailable) Ensure(ctx context.Context) error {
	return u.wrap()
}

func (u Unavailable) FindUser(ctx context.Context, username string) (*User, error) {
	return nil, u.wrap()
}

func (u Unavailable) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	return nil, u.wrap()
}

func (u Unavailable) Close() error {
	return nil
}

func (u Unavailable) wrap() error {
	if u.Err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, u.Err)
	}
	return ErrUnavailable
}
