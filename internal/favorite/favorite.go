// Package favorite keeps the properties a seeker saved during their
// browser session.
package favorite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/evcraddock/kwartayo/internal/kv"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

// Key is the storage key of the saved list.
const Key = "kwartayo_favorites"

// Saved records when a property was saved.
type Saved struct {
	PropertyID int64     `json:"property_id"`
	SavedAt    time.Time `json:"saved_at"`
}

// Store reads and writes the saved list in session storage.
type Store struct {
	storage kv.Store
	now     func() time.Time
}

// NewStore creates a favorites store over session storage.
func NewStore(storage kv.Store) *Store {
	return &Store{storage: storage, now: time.Now}
}

// List returns the saved entries in the order they were saved. An
// unreadable list is treated as empty.
func (s *Store) List(ctx context.Context) ([]Saved, error) {
	raw, err := s.storage.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	var saved []Saved
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return nil, nil
	}
	return saved, nil
}

// IDs returns the set of saved property ids.
func (s *Store) IDs(ctx context.Context) (map[int64]bool, error) {
	saved, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]bool, len(saved))
	for _, f := range saved {
		ids[f.PropertyID] = true
	}
	return ids, nil
}

// Toggle saves the property if it is not saved and removes it otherwise.
// It reports whether the property is saved afterwards.
func (s *Store) Toggle(ctx context.Context, propertyID int64) (bool, error) {
	saved, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	i := slices.IndexFunc(saved, func(f Saved) bool { return f.PropertyID == propertyID })
	if i >= 0 {
		saved = slices.Delete(saved, i, i+1)
	} else {
		saved = append(saved, Saved{PropertyID: propertyID, SavedAt: s.now().UTC()})
	}

	b, err := json.Marshal(saved)
	if err != nil {
		return false, fmt.Errorf("encoding favorites: %w", err)
	}
	if err := s.storage.Set(ctx, Key, string(b), 0); err != nil {
		return false, fmt.Errorf("saving favorites: %w", err)
	}
	return i < 0, nil
}

// Favorite is a saved property with its save time.
type Favorite struct {
	listing.Property
	SavedAt time.Time
}

// Resolve joins saved entries with the properties they reference. Entries
// whose property no longer exists are dropped.
func Resolve(props []listing.Property, saved []Saved) []Favorite {
	byID := make(map[int64]listing.Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}

	out := make([]Favorite, 0, len(saved))
	for _, f := range saved {
		if p, ok := byID[f.PropertyID]; ok {
			out = append(out, Favorite{Property: p, SavedAt: f.SavedAt})
		}
	}
	return out
}

// Sort orders favorites by key. SortRecent orders by save time, newest
// first; the other keys order by the property.
func Sort(favs []Favorite, key search.SortKey) []Favorite {
	if key == search.SortRecent || key == "" {
		return search.SortStable(favs, func(a, b Favorite) int { return b.SavedAt.Compare(a.SavedAt) })
	}
	cmp := search.PropertyComparator(key)
	return search.SortStable(favs, func(a, b Favorite) int { return cmp(a.Property, b.Property) })
}
