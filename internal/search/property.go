package search

import (
	"cmp"
	"slices"

	"github.com/evcraddock/kwartayo/internal/listing"
)

// SortKey selects the ordering of property results.
type SortKey string

const (
	SortRecent SortKey = "recent"
	SortPrice  SortKey = "price"
	SortRating SortKey = "rating"
	SortMatch  SortKey = "match"
)

// SortKeys lists the keys offered by the search view.
var SortKeys = []SortKey{SortRecent, SortPrice, SortRating}

// ParseSortKey maps a query value to a SortKey. Unknown values fall back to
// SortRecent.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortRecent, SortPrice, SortRating, SortMatch:
		return k
	}
	return SortRecent
}

// Default price bounds applied when a query omits them.
const (
	DefaultMinPrice = 3000
	DefaultMaxPrice = 30000
)

// PropertyCriteria are the user-chosen property filters. Zero values mean
// the corresponding filter is inactive.
type PropertyCriteria struct {
	Location  string
	MinPrice  int
	MaxPrice  int
	Bedrooms  []int
	Bathrooms []int
	Amenities []string
	Query     string
	Sort      SortKey
}

// Predicates returns one predicate per active filter.
func (c PropertyCriteria) Predicates() []Predicate[listing.Property] {
	var preds []Predicate[listing.Property]

	if c.Location != "" {
		loc := c.Location
		preds = append(preds, func(p listing.Property) bool { return p.Location == loc })
	}
	if c.MinPrice > 0 {
		lo := c.MinPrice
		preds = append(preds, func(p listing.Property) bool { return p.Price >= lo })
	}
	if c.MaxPrice > 0 {
		hi := c.MaxPrice
		preds = append(preds, func(p listing.Property) bool { return p.Price <= hi })
	}
	if len(c.Bedrooms) > 0 {
		beds := c.Bedrooms
		preds = append(preds, func(p listing.Property) bool { return slices.Contains(beds, p.Beds) })
	}
	if len(c.Bathrooms) > 0 {
		baths := c.Bathrooms
		preds = append(preds, func(p listing.Property) bool { return slices.Contains(baths, p.Baths) })
	}
	if len(c.Amenities) > 0 {
		want := c.Amenities
		preds = append(preds, func(p listing.Property) bool { return Superset(p.Amenities, want) })
	}
	if c.Query != "" {
		q := c.Query
		preds = append(preds, func(p listing.Property) bool {
			return ContainsFold(p.Title, q) || ContainsFold(p.Location, q)
		})
	}
	return preds
}

// Match reports whether p passes every active filter.
func (c PropertyCriteria) Match(p listing.Property) bool {
	return all(p, c.Predicates())
}

// Apply filters props and orders the result by c.Sort.
func (c PropertyCriteria) Apply(props []listing.Property) []listing.Property {
	return SortStable(Filter(props, c.Predicates()...), PropertyComparator(c.Sort))
}

// PropertyComparator returns the comparator for key. Unknown keys order by
// recency.
func PropertyComparator(key SortKey) func(a, b listing.Property) int {
	switch key {
	case SortPrice:
		return ByPrice
	case SortRating:
		return ByRating
	case SortMatch:
		return ByMatch
	}
	return ByRecent
}

// ByRecent orders newest listings first.
func ByRecent(a, b listing.Property) int { return b.ListedAt.Compare(a.ListedAt) }

// ByPrice orders cheapest first.
func ByPrice(a, b listing.Property) int { return cmp.Compare(a.Price, b.Price) }

// ByRating orders best rated first.
func ByRating(a, b listing.Property) int { return cmp.Compare(b.Rating, a.Rating) }

// ByMatch orders highest match score first.
func ByMatch(a, b listing.Property) int { return cmp.Compare(b.MatchScore, a.MatchScore) }
