package guard

import (
	"sync"
)

// MemoryStore is the in-process CounterStore used in tests and as a fallback
// when Redis is not configured. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]int)}
}

func (s *MemoryStore) Incr(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

func (s *MemoryStore) Get(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key], nil
}

func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counters, key)
	return nil
}
