// Package memory provides a thread-safe in-memory implementation of
// store.Store. Suitable for testing, demos, and single-process use.
package memory

import (
	"context"
	"sync"

	"github.com/jmcleod/authgate/store"
)

// Store is a thread-safe in-memory implementation of store.Store.
// Contents are lost on process exit.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*store.User
	nextID int64
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory Store.
func New() *Store {
	return &Store{users: make(map[string]*store.User)}
}

func (s *Store) Ensure(ctx context.Context) error {
	return nil
}

func (s *Store) FindUser(ctx context.Context, username string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return nil, store.ErrExists
	}
	s.nextID++
	user := &store.User{ID: s.nextID, Username: username, PasswordHash: passwordHash}
	s.users[username] = user
	u := *user
	return &u, nil
}

func (s *Store) Close() error {
	return nil
}
