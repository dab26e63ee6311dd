package history

import (
	"strings"
	"sync"
)

// Store is an ordered log of accepted lines, oldest first.
type Store interface {
	// Append records an accepted line. Empty lines and lines equal to
	// the most recent entry are dropped.
	Append(line string)

	// Len returns the number of entries.
	Len() int

	// At returns the entry at index i, oldest first.
	At(i int) (string, bool)
}

// DefaultMaxEntries bounds a memory store when no limit is given.
const DefaultMaxEntries = 10000

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    []string
	maxEntries int
}

// NewMemoryStore creates a store capped at maxEntries lines. Oldest
// entries are dropped when the cap is exceeded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{maxEntries: maxEntries}
}

// Append records a line, skipping empties and consecutive duplicates.
func (s *MemoryStore) Append(line string) {
	if line == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.entries); n > 0 && s.entries[n-1] == line {
		return
	}

	s.entries = append(s.entries, line)
	if len(s.entries) > s.maxEntries {
		excess := len(s.entries) - s.maxEntries
		s.entries = s.entries[excess:]
	}
}

// Len returns the number of entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// At returns the entry at index i, oldest first.
func (s *MemoryStore) At(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.entries) {
		return "", false
	}
	return s.entries[i], true
}

// SearchBackward finds the nearest entry at or before index from whose
// text contains query as a substring. A from past the end starts at
// the newest entry. Returns the matching index, false when no entry
// matches.
func SearchBackward(s Store, query string, from int) (int, bool) {
	if query == "" {
		return 0, false
	}
	if from >= s.Len() {
		from = s.Len() - 1
	}
	for i := from; i >= 0; i-- {
		entry, ok := s.At(i)
		if ok && strings.Contains(entry, query) {
			return i, true
		}
	}
	return 0, false
}

// SearchForward finds the nearest entry at or after index from whose
// text contains query as a substring.
func SearchForward(s Store, query string, from int) (int, bool) {
	if query == "" {
		return 0, false
	}
	if from < 0 {
		from = 0
	}
	for i := from; i < s.Len(); i++ {
		entry, ok := s.At(i)
		if ok && strings.Contains(entry, query) {
			return i, true
		}
	}
	return 0, false
}
