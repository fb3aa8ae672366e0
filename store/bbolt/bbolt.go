// Package bbolt provides a BBolt-backed credential store: the
// embedded-file variant that needs no external database process.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jmcleod/authgate/store"
)

var usersBucket = []byte("users")

// Store implements store.Store backed by a BBolt database file.
// Users are keyed by username; IDs come from the bucket sequence.
type Store struct {
	db *bbolt.DB
}

var _ store.Store = (*Store)(nil)

// New returns a Store backed by the given BBolt database.
func New(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// Open opens a BBolt database at the given path and returns a new
// Store. An open failure is reported as store.ErrUnavailable.
func Open(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db %s: %w: %v", path, store.ErrUnavailable, err)
	}
	return New(db), nil
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ensure(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(usersBucket)
		return err
	})
}

func (s *Store) FindUser(ctx context.Context, username string) (*store.User, error) {
	var user store.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return store.ErrNotFound
		}
		data := b.Get([]byte(username))
		if data == nil {
			return store.ErrNotFound
		}
		return json.Unmarshal(data, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*store.User, error) {
	var user store.User
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(usersBucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(username)) != nil {
			return fmt.Errorf("%s: %w", username, store.ErrExists)
		}
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		user = store.User{ID: int64(id), Username: username, PasswordHash: passwordHash}
		data, err := json.Marshal(&user)
		if err != nil {
			return err
		}
		return b.Put([]byte(username), data)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
