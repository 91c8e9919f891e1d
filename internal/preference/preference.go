// Package preference stores a seeker's room preferences for their browser
// session.
package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/kv"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

// Key is the storage key of the saved preferences.
const Key = "kwartayo_preferences"

// LeaseTerms are the offered lease lengths in months.
var LeaseTerms = []string{"3", "6", "12", "24"}

// ErrBudgetRange is returned by Validate when the budget bounds are
// inverted or negative.
var ErrBudgetRange = errors.New("invalid budget range")

// Preferences describe the room a seeker is looking for.
type Preferences struct {
	BudgetMin int      `json:"budget_min"`
	BudgetMax int      `json:"budget_max"`
	Locations []string `json:"locations"`
	Bedrooms  []int    `json:"bedrooms"`
	Bathrooms []int    `json:"bathrooms"`
	Amenities []string `json:"amenities"`
	MoveIn    string   `json:"move_in_date"`
	LeaseTerm string   `json:"lease_term"`
}

// Defaults returns the preferences of a seeker who saved nothing yet.
func Defaults() Preferences {
	return Preferences{BudgetMin: 5000, BudgetMax: 15000, LeaseTerm: "12"}
}

// Validate checks the budget range.
func (p Preferences) Validate() error {
	if p.BudgetMin < 0 || p.BudgetMax < 0 || (p.BudgetMax > 0 && p.BudgetMin > p.BudgetMax) {
		return fmt.Errorf("%w: %d to %d", ErrBudgetRange, p.BudgetMin, p.BudgetMax)
	}
	return nil
}

// ProfileLocation is the profile location implied by the chosen areas.
func (p Preferences) ProfileLocation() string {
	return strings.Join(p.Locations, ", ")
}

// ProfilePatch returns the profile update applied when preferences are
// saved.
func (p Preferences) ProfilePatch() auth.Patch {
	loc := p.ProfileLocation()
	return auth.Patch{Location: &loc}
}

// SearchCriteria turns the preferences into a property search. A location
// filter is only set when exactly one area was chosen.
func (p Preferences) SearchCriteria() search.PropertyCriteria {
	c := search.PropertyCriteria{
		MinPrice:  p.BudgetMin,
		MaxPrice:  p.BudgetMax,
		Bedrooms:  p.Bedrooms,
		Bathrooms: p.Bathrooms,
		Amenities: p.Amenities,
		Sort:      search.SortRecent,
	}
	if len(p.Locations) == 1 {
		c.Location = p.Locations[0]
	}
	return c
}

// Recommend returns the active properties that fit the preferences, best
// match first. A property in any of the chosen areas qualifies.
func (p Preferences) Recommend(props []listing.Property) []listing.Property {
	preds := p.SearchCriteria().Predicates()
	if len(p.Locations) > 1 {
		areas := p.Locations
		preds = append(preds, func(prop listing.Property) bool { return slices.Contains(areas, prop.Location) })
	}
	return search.SortStable(search.Filter(listing.Active(props), preds...), search.ByMatch)
}

// Load returns the saved preferences or Defaults.
func Load(ctx context.Context, storage kv.Store) (Preferences, error) {
	p, _, err := Lookup(ctx, storage)
	return p, err
}

// Lookup is Load that also reports whether the seeker saved preferences.
// An unreadable value counts as not saved.
func Lookup(ctx context.Context, storage kv.Store) (Preferences, bool, error) {
	raw, err := storage.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return Defaults(), false, nil
	}
	if err != nil {
		return Preferences{}, false, fmt.Errorf("loading preferences: %w", err)
	}

	p := Defaults()
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Defaults(), false, nil
	}
	return p, true, nil
}

// Save validates and stores the preferences.
func Save(ctx context.Context, storage kv.Store, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := storage.Set(ctx, Key, string(b), 0); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}
