package funfacts

import (
	"context"
	"sync"
	"time"

	"github.com/ethanbaker/states/pkg/states"
)

// InMemoryStore provides an in-memory implementation of states.OverlayStore.
// Data does not survive a restart.
type InMemoryStore struct {
	overlays map[string]*states.FunFactOverlay
	mutex    sync.RWMutex
	now      func() time.Time
}

// NewInMemoryStore creates a new in-memory fun fact store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		overlays: make(map[string]*states.FunFactOverlay),
		mutex:    sync.RWMutex{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetFacts returns a copy of the facts stored for a state
func (s *InMemoryStore) GetFacts(ctx context.Context, code string) ([]string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	overlay, exists := s.overlays[code]
	if !exists {
		return nil, false, nil
	}
	return copyOverlay(overlay).Facts, true, nil
}

// GetOrCreate returns the overlay for a state, creating an empty one if needed
func (s *InMemoryStore) GetOrCreate(ctx context.Context, code string) (*states.FunFactOverlay, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return copyOverlay(s.getOrCreate(code)), nil
}

// AppendFacts appends facts to a state's overlay, creating it first if needed
func (s *InMemoryStore) AppendFacts(ctx context.Context, code string, facts []string) (*states.FunFactOverlay, error) {
	if len(facts) == 0 {
		return nil, states.ErrEmptyFacts
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	overlay := s.getOrCreate(code)
	updated, err := states.AppendFacts(overlay.Facts, facts)
	if err != nil {
		return nil, err
	}

	overlay.Facts = updated
	overlay.UpdatedAt = s.now()
	return copyOverlay(overlay), nil
}

// ReplaceFactAt sets the fact at a zero-based index
func (s *InMemoryStore) ReplaceFactAt(ctx context.Context, code string, index int, value string) (*states.FunFactOverlay, error) {
	return s.mutate(code, func(facts []string) ([]string, error) {
		return states.ReplaceAt(facts, index, value)
	})
}

// RemoveFactAt removes the fact at a zero-based index and compacts the list
func (s *InMemoryStore) RemoveFactAt(ctx context.Context, code string, index int) (*states.FunFactOverlay, error) {
	return s.mutate(code, func(facts []string) ([]string, error) {
		return states.RemoveAt(facts, index)
	})
}

// mutate applies fn to an existing overlay under the write lock
func (s *InMemoryStore) mutate(code string, fn func([]string) ([]string, error)) (*states.FunFactOverlay, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	overlay, exists := s.overlays[code]
	if !exists {
		return nil, states.ErrNoFacts
	}

	updated, err := fn(overlay.Facts)
	if err != nil {
		return nil, err
	}

	overlay.Facts = updated
	overlay.UpdatedAt = s.now()
	return copyOverlay(overlay), nil
}

// getOrCreate must be called with the write lock held
func (s *InMemoryStore) getOrCreate(code string) *states.FunFactOverlay {
	if overlay, exists := s.overlays[code]; exists {
		return overlay
	}

	now := s.now()
	overlay := &states.FunFactOverlay{
		StateCode: code,
		Facts:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.overlays[code] = overlay
	return overlay
}

// copyOverlay returns a deep copy to avoid shared references
func copyOverlay(overlay *states.FunFactOverlay) *states.FunFactOverlay {
	facts := make([]string, len(overlay.Facts))
	copy(facts, overlay.Facts)

	return &states.FunFactOverlay{
		StateCode: overlay.StateCode,
		Facts:     facts,
		CreatedAt: overlay.CreatedAt,
		UpdatedAt: overlay.UpdatedAt,
	}
}
