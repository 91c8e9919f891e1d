package moderation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/evcraddock/kwartayo/internal/search"
)

// StatusFilter selects requests by status. StatusAll shows every request.
type StatusFilter string

const StatusAll StatusFilter = "all"

// StatusFilters are the verification tabs in display order.
var StatusFilters = []StatusFilter{StatusAll, StatusFilter(StatusPending), StatusFilter(StatusApproved), StatusFilter(StatusRejected)}

// ParseStatusFilter maps a query value to a filter, defaulting to pending.
func ParseStatusFilter(s string) StatusFilter {
	switch f := StatusFilter(s); f {
	case StatusAll, StatusFilter(StatusApproved), StatusFilter(StatusRejected), StatusFilter(StatusPending):
		return f
	}
	return StatusFilter(StatusPending)
}

// Criteria filter the verification queue.
type Criteria struct {
	Status StatusFilter
	Query  string
}

// Predicates returns the active filters.
func (c Criteria) Predicates() []search.Predicate[Request] {
	var preds []search.Predicate[Request]
	status := c.Status
	if status == "" {
		status = StatusFilter(StatusPending)
	}
	if status != StatusAll {
		want := Status(status)
		preds = append(preds, func(r Request) bool { return r.Status == want })
	}
	if q := strings.TrimSpace(c.Query); q != "" {
		preds = append(preds, func(r Request) bool { return search.ContainsFold(r.Name, q) })
	}
	return preds
}

// Apply filters requests, preserving queue order.
func (c Criteria) Apply(reqs []Request) []Request {
	return search.Filter(reqs, c.Predicates()...)
}

// Service applies admin decisions.
type Service struct {
	repo Repository
}

// NewService creates a moderation service over repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Requests returns the queue entries matching c.
func (s *Service) Requests(ctx context.Context, c Criteria) ([]Request, error) {
	reqs, err := s.repo.Requests(ctx)
	if err != nil {
		return nil, err
	}
	return c.Apply(reqs), nil
}

// Approve marks a pending request approved.
func (s *Service) Approve(ctx context.Context, id int64) (Request, error) {
	return s.decide(ctx, id, StatusApproved, "")
}

// Reject marks a pending request rejected with an optional reason.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (Request, error) {
	return s.decide(ctx, id, StatusRejected, strings.TrimSpace(reason))
}

func (s *Service) decide(ctx context.Context, id int64, status Status, reason string) (Request, error) {
	r, err := s.repo.UpdateRequest(ctx, id, func(r *Request) error {
		if r.Status != StatusPending {
			return ErrNotPending
		}
		r.Status = status
		if reason != "" {
			r.Reason = reason
		}
		return nil
	})
	if err != nil {
		return Request{}, err
	}
	slog.Info("verification decided", "id", r.ID, "name", r.Name, "status", r.Status)
	return r, nil
}

// Flagged returns reported listings, most reported first.
func (s *Service) Flagged(ctx context.Context) ([]FlaggedListing, error) {
	items, err := s.repo.Flagged(ctx)
	if err != nil {
		return nil, err
	}
	return search.SortStable(items, func(a, b FlaggedListing) int { return b.ReportCount - a.ReportCount }), nil
}

// RemoveFlagged takes a reported listing off the report queue.
func (s *Service) RemoveFlagged(ctx context.Context, id int64) error {
	return s.repo.RemoveFlagged(ctx, id)
}

// Stats returns the dashboard counters with the pending count computed
// from the live queue.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	reqs, err := s.repo.Requests(ctx)
	if err != nil {
		return Stats{}, err
	}
	st.PendingVerifications = len(search.Filter(reqs, func(r Request) bool { return r.Status == StatusPending }))
	return st, nil
}

// ListingStats returns the analytics tab counters.
func (s *Service) ListingStats() ListingStats {
	return FixtureListingStats()
}
