package idempotency

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implementa Store en memoria del proceso. Para una sola instancia o tests.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	entries   map[string]memoryEntry
	nextSweep time.Time
}

type memoryEntry struct {
	resp    *Response // nil mientras está pendiente
	expires time.Time
}

// NewMemoryStore construye el store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Begin(_ context.Context, key string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	if e, ok := s.entries[key]; ok && now.Before(e.expires) {
		if e.resp == nil {
			return nil, ErrInProgress
		}
		resp := *e.resp
		return &resp, nil
	}
	s.entries[key] = memoryEntry{expires: now.Add(s.ttl)}
	return nil, nil
}

func (s *MemoryStore) Complete(_ context.Context, key string, resp Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{resp: &resp, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Abort(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// sweep borra las entradas vencidas, como mucho una vez por ttl. Requiere s.mu tomado.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
	s.nextSweep = now.Add(s.ttl)
}

// size cantidad de claves guardadas, vencidas o no.
func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
