package order

import (
	"context"
	"sync"
)

// DraftStore is the durable single-slot draft storage, one slot per session.
// Put fully overwrites any prior value. Get returns ErrNoDraft when the slot
// is empty or the stored value is unreadable; it never fails hard on a
// corrupt record. Clear is idempotent.
type DraftStore interface {
	Put(ctx context.Context, d Draft) error
	Get(ctx context.Context, sessionID string) (Draft, error)
	Clear(ctx context.Context, sessionID string) error
}

// NewMemoryStore constructs an in-memory draft store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft)}
}

// MemoryStore keeps drafts in process memory. It backs tests and the
// no-external-dependencies fallback in the server wiring.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]Draft
}

func (s *MemoryStore) Put(ctx context.Context, d Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.SessionID] = d
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionID]
	if !ok {
		return Draft{}, ErrNoDraft
	}
	return d, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

// Len reports how many sessions currently hold a draft (for testing/inspection).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
