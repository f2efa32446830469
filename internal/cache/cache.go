// Package cache stores the last resolved value of keyed fetches and dedupes
// concurrent fetches for the same key.
package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchFunc resolves the value for a key.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Store maps keys to resolved values. Only successful fetches write entries.
type Store[K comparable, V any] struct {
	name string

	mu      sync.Mutex
	entries map[K]V
	group   singleflight.Group
}

// New creates an empty store. name prefixes errors and in-flight keys.
func New[K comparable, V any](name string) *Store[K, V] {
	return &Store[K, V]{name: name, entries: make(map[K]V)}
}

func (s *Store[K, V]) Name() string { return s.name }

// Get returns the cached value for key, fetching it when absent or when force
// is set. Concurrent non-forced calls for the same key share one fetch. A
// forced call always fetches and its result replaces the entry, so overlapping
// callers see last write wins.
func (s *Store[K, V]) Get(ctx context.Context, key K, force bool, fetch FetchFunc[V]) (V, error) {
	if !force {
		if v, ok := s.Peek(key); ok {
			return v, nil
		}
		return s.shared(ctx, key, fetch)
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	s.Set(key, v)
	return v, nil
}

func (s *Store[K, V]) shared(ctx context.Context, key K, fetch FetchFunc[V]) (V, error) {
	var zero V
	// The fetch is shared, so no single caller's cancellation may abort it.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(fmt.Sprintf("%s:%v", s.name, key), func() (any, error) {
		v, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		s.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

func (s *Store[K, V]) Set(key K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = v
}

func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Peek returns the entry without fetching.
func (s *Store[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *Store[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]K, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[K]V)
}
