package memstore

import (
	"context"
	"sync"
	"time"
)

type item struct {
	value   string
	expires time.Time
}

// Store is an in-process TTL key-value store. Expired entries are hidden on
// read and reclaimed by Run.
type Store struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

func New() *Store {
	return &Store{items: make(map[string]item), now: time.Now}
}

// WithClock replaces the time source. Used by tests to step past a TTL.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = item{value: value, expires: s.now().Add(ttl)}
	return nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.liveLocked(key)
	return it.value, ok, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *Store) Take(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.liveLocked(key)
	delete(s.items, key)
	return it.value, ok, nil
}

func (s *Store) CompareAndDelete(_ context.Context, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.liveLocked(key)
	if !ok || it.value != value {
		return false, nil
	}
	delete(s.items, key)
	return true, nil
}

func (s *Store) liveLocked(key string) (item, bool) {
	it, ok := s.items[key]
	if !ok {
		return item{}, false
	}
	if !s.now().Before(it.expires) {
		delete(s.items, key)
		return item{}, false
	}
	return it, true
}

// Run sweeps expired entries every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for k, it := range s.items {
		if !now.Before(it.expires) {
			delete(s.items, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
