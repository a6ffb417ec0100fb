package memory

import (
	"sync"

	"clubfeed/internal/domain"
)

// Store is the session-scoped in-memory feed cache. It is safe for
// concurrent use: optimistic patches arrive from the caller's goroutine
// while confirm and reconcile phases complete in the background.
type Store struct {
	mu          sync.RWMutex
	items       []domain.FeedItem
	initialized bool
	generation  uint64
}

func New() *Store {
	return &Store{}
}

// Initialize fills the store from the bootstrap payload. It is valid exactly
// once per session; a second call reports domain.ErrAlreadyInitialized.
func (s *Store) Initialize(items []domain.FeedItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return domain.ErrAlreadyInitialized
	}

	s.items = make([]domain.FeedItem, len(items))
	copy(s.items, items)
	s.initialized = true
	s.generation = 1
	return nil
}

// Snapshot returns a copy of the current item list. Callers may not mutate
// the store through it.
func (s *Store) Snapshot() []domain.FeedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make([]domain.FeedItem, len(s.items))
	copy(snap, s.items)
	return snap
}

// UnreadCount recomputes the unread notification count from the item list on
// every call. No separate counter exists, so it can never drift.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, it := range s.items {
		if it.IsNotification() && !it.Read {
			count++
		}
	}
	return count
}

// ApplyPatch replaces the item with the given id by a transformed copy.
// A missing id is a no-op: a dismiss racing a mark-read must not fail.
func (s *Store) ApplyPatch(id int64, fn func(domain.FeedItem) domain.FeedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = fn(s.items[i])
			return
		}
	}
}

// Remove deletes the item with the given id; no-op if absent.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Replace installs an authoritative reload. seq tags the load attempt at
// issue time; a completion whose seq does not exceed the current generation
// lost to a newer load and is discarded, so the most recently completed
// load wins regardless of issue order. Reports whether the reload applied.
func (s *Store) Replace(items []domain.FeedItem, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || seq <= s.generation {
		return false
	}

	s.items = make([]domain.FeedItem, len(items))
	copy(s.items, items)
	s.generation = seq
	return true
}

// Generation returns the sequence number of the most recent applied load.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
