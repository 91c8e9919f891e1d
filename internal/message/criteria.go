package message

import (
	"github.com/evcraddock/kwartayo/internal/search"
)

// View selects which conversations the inbox shows.
type View string

const (
	ViewAll      View = "all"
	ViewUnread   View = "unread"
	ViewArchived View = "archived"
)

// Views are the inbox tabs in display order.
var Views = []View{ViewAll, ViewUnread, ViewArchived}

// ParseView maps a query value to a View, defaulting to ViewAll.
func ParseView(s string) View {
	switch v := View(s); v {
	case ViewUnread, ViewArchived:
		return v
	}
	return ViewAll
}

// Criteria filter an inbox.
type Criteria struct {
	View  View
	Query string
}

// Predicates returns the active filters. Archived conversations only
// appear in the archived view.
func (c Criteria) Predicates() []search.Predicate[Conversation] {
	var preds []search.Predicate[Conversation]
	switch c.View {
	case ViewArchived:
		preds = append(preds, func(cv Conversation) bool { return cv.Archived })
	case ViewUnread:
		preds = append(preds, func(cv Conversation) bool { return !cv.Archived && cv.Unread > 0 })
	default:
		preds = append(preds, func(cv Conversation) bool { return !cv.Archived })
	}
	if c.Query != "" {
		q := c.Query
		preds = append(preds, func(cv Conversation) bool {
			return search.ContainsFold(cv.Other.Name, q) || search.ContainsFold(cv.Property.Title, q)
		})
	}
	return preds
}

// Apply filters convs and orders them newest first.
func (c Criteria) Apply(convs []Conversation) []Conversation {
	return search.SortStable(search.Filter(convs, c.Predicates()...), byLatest)
}

func byLatest(a, b Conversation) int {
	return b.LastMessageAt.Compare(a.LastMessageAt)
}

// TotalUnread sums unread counts over convs.
func TotalUnread(convs []Conversation) int {
	n := 0
	for _, c := range convs {
		n += c.Unread
	}
	return n
}
