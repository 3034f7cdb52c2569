package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/pattern-tools-mcp/internal/pattern"
)

// ErrPatternNotFound is returned for ids the store does not hold.
var ErrPatternNotFound = errors.New("pattern not found")

// Store keeps patterns in memory under generated ids. Insertion order is
// preserved for listing.
type Store struct {
	mu       sync.RWMutex
	patterns map[string]*pattern.Pattern
	order    []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		patterns: make(map[string]*pattern.Pattern),
	}
}

// Add stores p and returns its id.
func (s *Store) Add(p *pattern.Pattern) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.patterns[id] = p
	s.order = append(s.order, id)
	return id
}

// Get returns the pattern stored under id.
func (s *Store) Get(id string) (*pattern.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patterns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPatternNotFound, id)
	}
	return p, nil
}

// Delete removes the pattern stored under id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patterns[id]; !ok {
		return fmt.Errorf("%w: %s", ErrPatternNotFound, id)
	}
	delete(s.patterns, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// StoredPattern pairs a pattern with its id.
type StoredPattern struct {
	ID      string
	Pattern *pattern.Pattern
}

// List returns every stored pattern in insertion order.
func (s *Store) List() []StoredPattern {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredPattern, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, StoredPattern{ID: id, Pattern: s.patterns[id]})
	}
	return out
}

// Len returns the number of stored patterns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns)
}
