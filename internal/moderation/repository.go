package moderation

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Repository is the shared moderation store. Every admin view reads and
// writes through it, so a decision is visible on the next read.
type Repository interface {
	Requests(ctx context.Context) ([]Request, error)
	// UpdateRequest applies fn to the stored request and saves the result.
	// fn runs while the request is locked; if it returns an error nothing
	// is saved.
	UpdateRequest(ctx context.Context, id int64, fn func(*Request) error) (Request, error)
	Flagged(ctx context.Context) ([]FlaggedListing, error)
	RemoveFlagged(ctx context.Context, id int64) error
	Stats(ctx context.Context) (Stats, error)
}

// MemoryRepository holds moderation state in memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	requests []Request
	flagged  []FlaggedListing
	stats    Stats
}

// NewMemoryRepository creates a repository seeded with the fixtures.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		requests: FixtureRequests(),
		flagged:  FixtureFlagged(),
		stats:    FixtureStats(),
	}
}

// Requests implements Repository.
func (m *MemoryRepository) Requests(_ context.Context) ([]Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.requests), nil
}

// UpdateRequest implements Repository.
func (m *MemoryRepository) UpdateRequest(_ context.Context, id int64, fn func(*Request) error) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.requests, func(r Request) bool { return r.ID == id })
	if i < 0 {
		return Request{}, fmt.Errorf("request %d: %w", id, ErrNotFound)
	}
	r := m.requests[i]
	if err := fn(&r); err != nil {
		return Request{}, err
	}
	m.requests[i] = r
	return r, nil
}

// Flagged implements Repository.
func (m *MemoryRepository) Flagged(_ context.Context) ([]FlaggedListing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.flagged), nil
}

// RemoveFlagged implements Repository.
func (m *MemoryRepository) RemoveFlagged(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.flagged, func(f FlaggedListing) bool { return f.ID == id })
	if i < 0 {
		return fmt.Errorf("report %d: %w", id, ErrNotFound)
	}
	m.flagged = slices.Delete(m.flagged, i, i+1)
	return nil
}

// Stats implements Repository.
func (m *MemoryRepository) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats, nil
}
