package moderation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(reqs []Request) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Name
	}
	return out
}

func TestRequestsDefaultToPending(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	reqs, err := svc.Requests(context.Background(), Criteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria Santos", "John Cruz", "Alex Rivera"}, names(reqs))
}

func TestRequestsFilters(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	tests := []struct {
		c    Criteria
		want []string
	}{
		{Criteria{Status: StatusAll}, names(FixtureRequests())},
		{Criteria{Status: "approved"}, []string{"Cozy Room near UP Diliman", "2 Rooms in Share House"}},
		{Criteria{Status: "rejected"}, []string{"Studio Apartment Ortigas"}},
		{Criteria{Status: StatusAll, Query: "CRUZ"}, []string{"John Cruz"}},
		{Criteria{Status: "pending", Query: "room"}, []string{}},
	}
	for _, tt := range tests {
		reqs, err := svc.Requests(ctx, tt.c)
		require.NoError(t, err)
		assert.Equal(t, tt.want, names(reqs), "%+v", tt.c)
	}
}

func TestApproveVisibleOnNextRead(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	before, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, before.PendingVerifications)

	r, err := svc.Approve(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, r.Status)

	pending, err := svc.Requests(ctx, Criteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{"John Cruz", "Alex Rivera"}, names(pending))

	approved, err := svc.Requests(ctx, Criteria{Status: "approved"})
	require.NoError(t, err)
	assert.Contains(t, names(approved), "Maria Santos")

	after, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, after.PendingVerifications)
	assert.Equal(t, 1243, after.TotalUsers)
}

func TestReject(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	r, err := svc.Reject(ctx, 5, " incomplete documents ")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, r.Status)
	assert.Equal(t, "incomplete documents", r.Reason)

	rejected, err := svc.Requests(ctx, Criteria{Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex Rivera", "Studio Apartment Ortigas"}, names(rejected))
}

func TestDecideErrors(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Approve(ctx, 3)
	assert.ErrorIs(t, err, ErrNotPending)

	_, err = svc.Reject(ctx, 42, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Approve(ctx, 2)
	require.NoError(t, err)
	_, err = svc.Reject(ctx, 2, "")
	assert.ErrorIs(t, err, ErrNotPending)
}

// slowRepository widens the window between reading a request and saving
// the decision.
type slowRepository struct {
	*MemoryRepository
}

func (s slowRepository) UpdateRequest(ctx context.Context, id int64, fn func(*Request) error) (Request, error) {
	return s.MemoryRepository.UpdateRequest(ctx, id, func(r *Request) error {
		time.Sleep(20 * time.Millisecond)
		return fn(r)
	})
}

func TestConcurrentDecisionsOnlyOneWins(t *testing.T) {
	svc := NewService(slowRepository{NewMemoryRepository()})
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Approve(ctx, 1)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Reject(ctx, 1, "duplicate")
	}()
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.ErrorIs(t, err, ErrNotPending)
	}
	assert.Equal(t, 1, won)

	all, err := svc.Requests(ctx, Criteria{Status: StatusAll})
	require.NoError(t, err)
	for _, r := range all {
		if r.ID != 1 {
			continue
		}
		if errs[0] == nil {
			assert.Equal(t, StatusApproved, r.Status)
		} else {
			assert.Equal(t, StatusRejected, r.Status)
			assert.Equal(t, "duplicate", r.Reason)
		}
	}
}

func TestFlagged(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	items, err := svc.Flagged(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 5, items[0].ReportCount)

	require.NoError(t, svc.RemoveFlagged(ctx, 1))
	items, err = svc.Flagged(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.ErrorIs(t, svc.RemoveFlagged(ctx, 1), ErrNotFound)
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, StatusFilter("pending"), ParseStatusFilter(""))
	assert.Equal(t, StatusAll, ParseStatusFilter("all"))
	assert.Equal(t, StatusFilter("approved"), ParseStatusFilter("approved"))
	assert.Equal(t, StatusFilter("pending"), ParseStatusFilter("bogus"))
}
