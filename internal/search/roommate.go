package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/evcraddock/kwartayo/internal/listing"
)

// RoommateCriteria filter roommate profiles. Zero values are inactive.
type RoommateCriteria struct {
	Location  string
	MaxBudget int
	Gender    listing.Gender
	Query     string
}

// ParseRoommateQuery reads roommate criteria from a URL query.
func ParseRoommateQuery(q url.Values) RoommateCriteria {
	c := RoommateCriteria{
		Location:  strings.TrimSpace(q.Get("location")),
		MaxBudget: intOr(q.Get("maxBudget"), 0),
		Query:     strings.TrimSpace(q.Get("q")),
	}
	switch g := listing.Gender(q.Get("gender")); g {
	case listing.GenderMale, listing.GenderFemale:
		c.Gender = g
	}
	return c
}

// Values encodes the criteria in the form ParseRoommateQuery reads.
func (c RoommateCriteria) Values() url.Values {
	v := url.Values{}
	if c.Location != "" {
		v.Set("location", c.Location)
	}
	if c.MaxBudget > 0 {
		v.Set("maxBudget", strconv.Itoa(c.MaxBudget))
	}
	if c.Gender != "" {
		v.Set("gender", string(c.Gender))
	}
	if c.Query != "" {
		v.Set("q", c.Query)
	}
	return v
}

// Predicates returns one predicate per active filter.
func (c RoommateCriteria) Predicates() []Predicate[listing.Roommate] {
	var preds []Predicate[listing.Roommate]
	if c.Location != "" {
		loc := c.Location
		preds = append(preds, func(r listing.Roommate) bool { return r.Location == loc })
	}
	if c.MaxBudget > 0 {
		limit := c.MaxBudget
		preds = append(preds, func(r listing.Roommate) bool { return r.Budget <= limit })
	}
	if c.Gender != "" {
		g := c.Gender
		preds = append(preds, func(r listing.Roommate) bool { return r.Gender == g })
	}
	if c.Query != "" {
		q := c.Query
		preds = append(preds, func(r listing.Roommate) bool {
			return ContainsFold(r.Name, q) || ContainsFold(r.Occupation, q)
		})
	}
	return preds
}

// Apply filters roommates, preserving input order.
func (c RoommateCriteria) Apply(rs []listing.Roommate) []listing.Roommate {
	return Filter(rs, c.Predicates()...)
}

// StatusFilter selects listings on the owner's listings page.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusArchived StatusFilter = "archived"
)

// ParseStatusFilter maps a query value to a StatusFilter, defaulting to
// StatusAll.
func ParseStatusFilter(s string) StatusFilter {
	switch f := StatusFilter(s); f {
	case StatusActive, StatusArchived:
		return f
	}
	return StatusAll
}

// Apply returns the listings matching the filter.
func (f StatusFilter) Apply(props []listing.Property) []listing.Property {
	if f == StatusAll || f == "" {
		return Filter(props)
	}
	want := listing.Status(f)
	return Filter(props, func(p listing.Property) bool { return p.Status == want })
}
