package question

import (
	"context"
	"sync"
)

// Store persists normalized question records.
type Store interface {
	// SaveQuestions upserts records keyed by Key(text) and returns how many
	// were written.
	SaveQuestions(ctx context.Context, records []Record) (int, error)
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	questions map[string]Record
	order     []string
	mu        sync.RWMutex
}

// NewMemoryStore creates a new in-memory question store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		questions: make(map[string]Record),
	}
}

func (s *MemoryStore) SaveQuestions(_ context.Context, records []Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		key := Key(r.Text)
		if _, ok := s.questions[key]; !ok {
			s.order = append(s.order, key)
		}
		s.questions[key] = r
	}
	return len(records), nil
}

// Get returns a stored record by key.
func (s *MemoryStore) Get(key string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.questions[key]
	return r, ok
}

// All returns stored records in first-save order.
func (s *MemoryStore) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.questions[key])
	}
	return out
}
