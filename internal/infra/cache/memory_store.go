package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	val       []byte
	expiresAt time.Time
	tags      []string
}

// MemoryStore is a single-process Store. It keeps a per-tag key index so
// invalidation removes only the tagged keys.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	tagKeys map[string]map[string]struct{}
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		tagKeys: make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

func (s *MemoryStore) WithNow(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, 0, ErrMiss
	}
	remaining := e.expiresAt.Sub(s.now())
	if remaining <= 0 {
		s.deleteLocked(key)
		return nil, 0, ErrMiss
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, remaining, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteLocked(key)
	stored := make([]byte, len(val))
	copy(stored, val)
	s.entries[key] = memoryEntry{val: stored, expiresAt: s.now().Add(ttl), tags: tags}
	for _, tag := range tags {
		keys, ok := s.tagKeys[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.tagKeys[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) InvalidateTags(_ context.Context, tags ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range tags {
		for key := range s.tagKeys[tag] {
			s.deleteLocked(key)
		}
		delete(s.tagKeys, tag)
	}
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// deleteLocked also unlinks key from every tag it was filed under.
func (s *MemoryStore) deleteLocked(key string) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	delete(s.entries, key)
	for _, tag := range e.tags {
		if keys, ok := s.tagKeys[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.tagKeys, tag)
			}
		}
	}
}
