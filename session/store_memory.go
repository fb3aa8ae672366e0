package session

import "sync"

// MemoryStore is a thread-safe in-memory Store. Sessions are lost on
// server restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]State
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]State)}
}

func (s *MemoryStore) Get(token string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.data[token]
	return state, ok
}

func (s *MemoryStore) Put(token string, state State) {
	s.mu.Lock()
	s.data[token] = state
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
}
