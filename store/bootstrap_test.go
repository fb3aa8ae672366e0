package store_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jmcleod/authgate/store"
	"github.com/jmcleod/authgate/store/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBootstrapSeedsOnce(t *testing.T) {
	ctx := t.Context()
	s := memory.New()

	if err := store.Bootstrap(ctx, s, discardLogger(), "admin", "admin123"); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	seeded, err := s.FindUser(ctx, "admin")
	if err != nil {
		t.Fatalf("seed row missing: %v", err)
	}
	if seeded.PasswordHash == "admin123" {
		t.Fatal("seed password must not be stored in cleartext")
	}

	// Re-running bootstrap never creates a second row.
	if err := store.Bootstrap(ctx, s, discardLogger(), "admin", "admin123"); err != nil {
		t.Fatalf("second Bootstrap failed: %v", err)
	}
	again, err := s.FindUser(ctx, "admin")
	if err != nil {
		t.Fatalf("seed row missing after rerun: %v", err)
	}
	if again.ID != seeded.ID || again.PasswordHash != seeded.PasswordHash {
		t.Fatalf("bootstrap rerun changed the seed row: %+v vs %+v", again, seeded)
	}
}

func TestAuthenticateSeededAccount(t *testing.T) {
	ctx := t.Context()
	s := memory.New()
	if err := store.Bootstrap(ctx, s, discardLogger(), "admin", "admin123"); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	t.Run("Match", func(t *testing.T) {
		user, err := store.Authenticate(ctx, s, "admin", "admin123")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Username != "admin" {
			t.Fatalf("got username %q, want admin", user.Username)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := store.Authenticate(ctx, s, "admin", "wrong")
		if !errors.Is(err, store.ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		// The error must match the wrong-password case exactly so the
		// response cannot be used for user enumeration.
		_, err := store.Authenticate(ctx, s, "root", "admin123")
		if !errors.Is(err, store.ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("EmptyInputs", func(t *testing.T) {
		_, err := store.Authenticate(ctx, s, "", "")
		if !errors.Is(err, store.ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("InjectionStrings", func(t *testing.T) {
		for _, u := range []string{
			"x' OR '1'='1",
			"admin'--",
			"admin\"; DROP TABLE users; --",
		} {
			_, err := store.Authenticate(ctx, s, u, "anything")
			if !errors.Is(err, store.ErrInvalidCredentials) {
				t.Fatalf("Authenticate(%q) = %v, want ErrInvalidCredentials", u, err)
			}
		}
	})
}

func TestBootstrapToleratesUnavailableStore(t *testing.T) {
	err := store.Bootstrap(t.Context(), store.Unavailable{}, discardLogger(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Bootstrap should tolerate an unavailable store, got %v", err)
	}
}

func TestAuthenticateUnavailableStore(t *testing.T) {
	_, err := store.Authenticate(t.Context(), store.Unavailable{}, "admin", "admin123")
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable (distinct from no match)", err)
	}
}

func TestUnavailableCarriesCause(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	err := store.Unavailable{Err: cause}.Ensure(t.Context())
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}
