package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmcleod/authgate/internal/password"
)

// Bootstrap idempotently prepares the store for use: it ensures the
// schema exists and seeds the default account when no user with that
// username is present. The seed password is hashed before insertion.
//
// An unreachable store is logged and tolerated — the process starts
// anyway and subsequent lookups simply find no user. Any other failure
// is returned to the caller.
func Bootstrap(ctx context.Context, s Store, logger *slog.Logger, username, passwd string) error {
	if err := s.Ensure(ctx); err != nil {
		if errors.Is(err, ErrUnavailable) {
			logger.Warn("credential store unavailable, skipping bootstrap", "error", err)
			return nil
		}
		return fmt.Errorf("ensuring schema: %w", err)
	}

	_, err := s.FindUser(ctx, username)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		logger.Warn("credential store unavailable, skipping seed", "error", err)
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking seed user: %w", err)
	}

	hash, err := password.Hash(passwd, password.DefaultParams())
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}
	if _, err := s.CreateUser(ctx, username, hash); err != nil {
		// A concurrent bootstrap may have won the insert.
		if errors.Is(err, ErrExists) {
			return nil
		}
		return fmt.Errorf("seeding user %q: %w", username, err)
	}
	logger.Info("seeded default account", "username", username)
	return nil
}
