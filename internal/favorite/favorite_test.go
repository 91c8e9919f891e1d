package favorite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/kwartayo/internal/kv"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

func TestToggle(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	saved, err := s.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = s.Toggle(ctx, 3)
	require.NoError(t, err)
	assert.True(t, saved)

	ids, err := s.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1: true, 3: true}, ids)

	saved, err = s.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.False(t, saved)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].PropertyID)
}

func TestListIgnoresCorruptState(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	require.NoError(t, storage.Set(ctx, Key, "not json", 0))

	list, err := NewStore(storage).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestResolveAndSort(t *testing.T) {
	props := listing.FixtureProperties()
	base := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	saved := []Saved{
		{PropertyID: 1, SavedAt: base.Add(-48 * time.Hour)},
		{PropertyID: 99, SavedAt: base},
		{PropertyID: 3, SavedAt: base.Add(-24 * time.Hour)},
		{PropertyID: 5, SavedAt: base.Add(-72 * time.Hour)},
	}

	favs := Resolve(props, saved)
	require.Len(t, favs, 3, "unknown property is dropped")

	ids := func(fs []Favorite) []int64 {
		out := make([]int64, len(fs))
		for i, f := range fs {
			out[i] = f.ID
		}
		return out
	}

	assert.Equal(t, []int64{3, 1, 5}, ids(Sort(favs, search.SortRecent)))
	assert.Equal(t, []int64{5, 1, 3}, ids(Sort(favs, search.SortPrice)))
	assert.Equal(t, []int64{3, 1, 5}, ids(Sort(favs, search.SortRating)))
}
