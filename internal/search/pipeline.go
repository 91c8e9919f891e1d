// Package search implements the filter and sort pipeline shared by every
// list view: criteria are turned into predicates, applied with AND
// semantics, and the survivors are stably ordered by a comparator.
package search

import (
	"slices"
	"strings"
)

// Predicate reports whether an item passes one filter.
type Predicate[T any] func(T) bool

// Filter returns the items that satisfy every predicate, in input order.
// The input slice is never modified. With no predicates every item passes.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if all(it, preds) {
			out = append(out, it)
		}
	}
	return out
}

func all[T any](it T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(it) {
			return false
		}
	}
	return true
}

// SortStable returns a copy of items ordered by cmp. Items comparing equal
// keep their relative input order. A nil cmp returns the copy unsorted.
func SortStable[T any](items []T, cmp func(a, b T) int) []T {
	out := slices.Clone(items)
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// ContainsFold reports whether substr appears in s, ignoring case.
// An empty substr always matches.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Superset reports whether have contains every element of want.
func Superset(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}
