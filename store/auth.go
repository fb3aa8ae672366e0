package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmcleod/authgate/internal/password"
)

// dummyHash is a well-formed argon2id PHC string that no password
// hashes to. The unknown-username branch verifies against it so both
// rejection paths pay the same KDF cost.
const dummyHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Authenticate verifies a username/password pair against the store.
// It returns the matching user, ErrInvalidCredentials when either the
// username is unknown or the password does not verify, ErrUnavailable
// when the store cannot be reached, or another error for a store-level
// query failure. An unknown username and a wrong password are
// indistinguishable in both the returned error and the time taken.
//
// Lookups are parameterized by the backends; credential-injection
// strings are plain data that simply fail to match.
func Authenticate(ctx context.Context, s Store, username, passwd string) (*User, error) {
	user, err := s.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_, _ = password.Verify(passwd, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	ok, err := password.Verify(passwd, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password for %q: %w", username, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
