package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when a property or roommate id is unknown.
var ErrNotFound = errors.New("not found")

// Repository is the single data-access seam for listings. Views depend on
// this interface; the fixture-backed implementation can be swapped for a
// real backend without touching them.
type Repository interface {
	// Properties returns every property, archived ones included, in
	// fixture order.
	Properties(ctx context.Context) ([]Property, error)
	Property(ctx context.Context, id int64) (Property, error)
	// ManagedBy returns the properties an owner account manages.
	ManagedBy(ctx context.Context, userID string) ([]Property, error)
	Roommates(ctx context.Context) ([]Roommate, error)
	Roommate(ctx context.Context, id int64) (Roommate, error)
}

// MemoryRepository serves listings from memory. Returned values are copies;
// callers may modify them freely.
type MemoryRepository struct {
	mu         sync.RWMutex
	properties []Property
	roommates  []Roommate
}

// NewMemoryRepository creates a repository holding the given records.
func NewMemoryRepository(properties []Property, roommates []Roommate) *MemoryRepository {
	r := &MemoryRepository{}
	for _, p := range properties {
		r.properties = append(r.properties, p.clone())
	}
	for _, rm := range roommates {
		r.roommates = append(r.roommates, rm.clone())
	}
	return r
}

// NewFixtureRepository creates a repository seeded with the shared fixtures.
func NewFixtureRepository() *MemoryRepository {
	return NewMemoryRepository(FixtureProperties(), FixtureRoommates())
}

// Properties implements Repository.
func (r *MemoryRepository) Properties(_ context.Context) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Property, len(r.properties))
	for i, p := range r.properties {
		out[i] = p.clone()
	}
	return out, nil
}

// Property implements Repository.
func (r *MemoryRepository) Property(_ context.Context, id int64) (Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.properties {
		if p.ID == id {
			return p.clone(), nil
		}
	}
	return Property{}, fmt.Errorf("property %d: %w", id, ErrNotFound)
}

// ManagedBy implements Repository.
func (r *MemoryRepository) ManagedBy(_ context.Context, userID string) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Property
	for _, p := range r.properties {
		if p.ManagerID != "" && p.ManagerID == userID {
			out = append(out, p.clone())
		}
	}
	return out, nil
}

// Roommates implements Repository.
func (r *MemoryRepository) Roommates(_ context.Context) ([]Roommate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Roommate, len(r.roommates))
	for i, rm := range r.roommates {
		out[i] = rm.clone()
	}
	return out, nil
}

// Roommate implements Repository.
func (r *MemoryRepository) Roommate(_ context.Context, id int64) (Roommate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rm := range r.roommates {
		if rm.ID == id {
			return rm.clone(), nil
		}
	}
	return Roommate{}, fmt.Errorf("roommate %d: %w", id, ErrNotFound)
}

// Active returns the properties visible to seekers, preserving order.
func Active(props []Property) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// Totals sums the engagement counters of the given properties.
func Totals(props []Property) Engagement {
	var t Engagement
	for _, p := range props {
		t.Views += p.Engagement.Views
		t.Favorites += p.Engagement.Favorites
		t.Inquiries += p.Engagement.Inquiries
	}
	return t
}
