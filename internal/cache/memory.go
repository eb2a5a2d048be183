package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// memoryStore is the fallback when Redis is not provisioned. Expiration is
// lazy on Get plus a janitor goroutine, so entries written once and never
// read again still get reclaimed.
type memoryStore struct {
	mu      sync.RWMutex
	items   map[string]memoryEntry
	done    chan struct{}
	closing sync.Once
}

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
	hasExpiry bool
}

const janitorInterval = time.Minute

func NewMemory() *memoryStore {
	s := &memoryStore{
		items: make(map[string]memoryEntry),
		done:  make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if entry.hasExpiry && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, ErrCacheMiss
	}

	// Copy so callers can't mutate the cached body.
	body := make([]byte, len(entry.body))
	copy(body, entry.body)
	return body, nil
}

func (s *memoryStore) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	entry := memoryEntry{body: make([]byte, len(body)), hasExpiry: ttl > 0}
	copy(entry.body, body)
	if entry.hasExpiry {
		entry.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = entry
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Close() error {
	s.closing.Do(func() {
		close(s.done)
	})
	return nil
}

func (s *memoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, entry := range s.items {
				if entry.hasExpiry && now.After(entry.expiresAt) {
					delete(s.items, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
