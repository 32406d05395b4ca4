package handoff

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

// MemoryStore keeps hand-off values in process.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func storeKey(session string, key Key) string {
	return session + ":" + string(key)
}

func (s *MemoryStore) Put(ctx context.Context, session string, key Key, value string) error {
	if err := checkSession(session); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.entries[storeKey(session, key)] = entry{value: value, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, session string, key Key) (string, bool, error) {
	if err := checkSession(session); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey(session, key)
	e, ok := s.entries[k]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, k)
	if s.expired(e) {
		return "", false, nil
	}
	return e.value, true, nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.entries)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	return nil
}

func (s *MemoryStore) expired(e entry) bool {
	return s.ttl > 0 && !s.now().Before(e.expires)
}

// sweep drops expired entries. Caller holds mu.
func (s *MemoryStore) sweep() {
	for k, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, k)
		}
	}
}
