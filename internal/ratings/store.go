package ratings

import (
	"errors"
	"sync"
)

// ErrOutOfRange is returned for rating values outside 1-5.
var ErrOutOfRange = errors.New("rating must be between 1 and 5")

// Store is the process-lifetime star-rating store: movie id to a 1-5 star
// value. Ratings are never persisted and never removed, only overwritten.
type Store struct {
	mu      sync.RWMutex
	byMovie map[string]int
}

// NewStore creates an empty rating store.
func NewStore() *Store {
	return &Store{byMovie: make(map[string]int)}
}

// Rate records a rating for the movie, overwriting any prior value. Values
// outside 1-5 are rejected and leave the prior rating unchanged.
func (s *Store) Rate(movieID string, value int) error {
	if value < 1 || value > 5 {
		return ErrOutOfRange
	}
	s.mu.Lock()
	s.byMovie[movieID] = value
	s.mu.Unlock()
	return nil
}

// Get returns the stored rating for the movie; ok is false when unrated.
func (s *Store) Get(movieID string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byMovie[movieID]
	return v, ok
}
