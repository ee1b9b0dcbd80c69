// Package cache provides a small fetch cache with explicit invalidation
// descriptors. Mutations name what became stale ({member, id} or the member
// list); the store drops those entries and optionally triggers a background
// refetch, so subsequent reads reflect the write.
package cache

import (
	"context"
	"fmt"
	"sync"
)

// Kind identifies a cached view.
type Kind string

const (
	// KindMember caches a single member by ID.
	KindMember Kind = "member"
	// KindMemberList caches pages of the member list.
	KindMemberList Kind = "memberList"
)

// Key is an invalidation descriptor for a cached view.
type Key struct {
	Kind Kind
	ID   string
}

// MemberKey returns the descriptor for a single member.
func MemberKey(id string) Key {
	return Key{Kind: KindMember, ID: id}
}

// MemberListKey returns the descriptor for the member list (all pages).
func MemberListKey() Key {
	return Key{Kind: KindMemberList}
}

// ListVariant names the cache variant for one page of the member list.
func ListVariant(page, limit int) string {
	return fmt.Sprintf("page=%d&limit=%d", page, limit)
}

// Refresher re-fetches data for an invalidated key. It runs in a background
// goroutine; failures are the refresher's to log, not the caller's.
type Refresher func(ctx context.Context, key Key)

// Store is a concurrency-safe fetch cache keyed by descriptor and variant
// (e.g. one variant per list page). Writes never populate it directly; reads
// fill it and invalidation empties it.
type Store struct {
	mu        sync.Mutex
	entries   map[Key]map[string]any
	refresher Refresher
}

// New creates an empty cache store.
func New() *Store {
	return &Store{entries: make(map[Key]map[string]any)}
}

// OnInvalidate registers a background refresher invoked after invalidation.
func (s *Store) OnInvalidate(fn Refresher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresher = fn
}

// Get returns the cached value for a key variant, if present.
func (s *Store) Get(key Key, variant string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	variants, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	v, ok := variants[variant]
	return v, ok
}

// Put stores a value under a key variant.
func (s *Store) Put(key Key, variant string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	variants, ok := s.entries[key]
	if !ok {
		variants = make(map[string]any)
		s.entries[key] = variants
	}
	variants[variant] = value
}

// Invalidate drops every variant of the given keys and triggers the
// registered refresher for each, fire-and-forget: callers report success
// without waiting for the refetch.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	refresher := s.refresher
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	if refresher == nil {
		return
	}
	for _, key := range keys {
		go refresher(context.Background(), key)
	}
}
