package search

import (
	"net/url"
	"strconv"
	"strings"
)

// ParsePropertyQuery reads property criteria from a URL query. Values are
// only type-coerced: a missing or malformed price falls back to its
// default and malformed list entries are dropped. Lists may be comma-joined
// or repeated, as submitted by checkboxes.
func ParsePropertyQuery(q url.Values) PropertyCriteria {
	return PropertyCriteria{
		Location:  strings.TrimSpace(q.Get("location")),
		MinPrice:  intOr(q.Get("minPrice"), DefaultMinPrice),
		MaxPrice:  intOr(q.Get("maxPrice"), DefaultMaxPrice),
		Bedrooms:  intList(joined(q, "bedrooms")),
		Bathrooms: intList(joined(q, "bathrooms")),
		Amenities: stringList(joined(q, "amenities")),
		Query:     strings.TrimSpace(q.Get("q")),
		Sort:      ParseSortKey(q.Get("sort")),
	}
}

// Values encodes the criteria in the form ParsePropertyQuery reads.
func (c PropertyCriteria) Values() url.Values {
	v := url.Values{}
	if c.Location != "" {
		v.Set("location", c.Location)
	}
	v.Set("minPrice", strconv.Itoa(c.MinPrice))
	v.Set("maxPrice", strconv.Itoa(c.MaxPrice))
	if len(c.Bedrooms) > 0 {
		v.Set("bedrooms", joinInts(c.Bedrooms))
	}
	if len(c.Bathrooms) > 0 {
		v.Set("bathrooms", joinInts(c.Bathrooms))
	}
	if len(c.Amenities) > 0 {
		v.Set("amenities", strings.Join(c.Amenities, ","))
	}
	if c.Query != "" {
		v.Set("q", c.Query)
	}
	if c.Sort != "" {
		v.Set("sort", string(c.Sort))
	}
	return v
}

// Encode returns the criteria as a URL query string.
func (c PropertyCriteria) Encode() string {
	return c.Values().Encode()
}

func intOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func joined(q url.Values, key string) string {
	return strings.Join(q[key], ",")
}

func stringList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intList(s string) []int {
	var out []int
	for _, part := range stringList(s) {
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
