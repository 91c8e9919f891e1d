package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/kwartayo/internal/kv"
)

func filledBasics() *Wizard {
	w := New()
	w.Draft.Title = "Sunny room"
	w.Draft.Location = "Makati"
	w.Draft.Price = 8000
	return w
}

func TestNewDefaults(t *testing.T) {
	w := New()
	assert.Equal(t, BasicInfo, w.State)
	assert.Equal(t, "room", w.Draft.Type)
	assert.Equal(t, 1, w.Draft.Beds)
	assert.Equal(t, 1, w.Draft.Baths)
	assert.Equal(t, []string{"title", "location", "price"}, w.Missing())
	assert.False(t, w.CanProceed())
}

func TestNextRequiresBasics(t *testing.T) {
	w := New()
	w.Draft.Title = "Sunny room"

	err := w.Next()
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "location, price")
	assert.Equal(t, BasicInfo, w.State)

	w.Draft.Location = "Makati"
	w.Draft.Price = 8000
	require.NoError(t, w.Next())
	assert.Equal(t, Details, w.State)
}

func TestDetailsRequireAmenity(t *testing.T) {
	w := filledBasics()
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.Next(), ErrIncomplete)
	assert.Equal(t, []string{"amenities"}, w.Missing())

	w.ToggleAmenity("WiFi")
	require.NoError(t, w.Next())
	assert.Equal(t, Description, w.State)
}

func TestDescriptionSubmits(t *testing.T) {
	w := filledBasics()
	require.NoError(t, w.Next())
	w.ToggleAmenity("WiFi")
	require.NoError(t, w.Next())

	w.Draft.Description = "   "
	assert.ErrorIs(t, w.Next(), ErrIncomplete)

	w.Draft.Description = "Bright room with balcony"
	require.NoError(t, w.Next())
	assert.True(t, w.Done())
	assert.False(t, w.CanProceed())

	assert.ErrorIs(t, w.Next(), ErrSubmitted)
	assert.ErrorIs(t, w.Back(), ErrSubmitted)
}

func TestBack(t *testing.T) {
	w := filledBasics()
	assert.ErrorIs(t, w.Back(), ErrNoPrevious)

	require.NoError(t, w.Next())
	require.NoError(t, w.Back())
	assert.Equal(t, BasicInfo, w.State)
	assert.Equal(t, "Sunny room", w.Draft.Title, "going back keeps the draft")
}

func TestBackDoesNotCheckGuards(t *testing.T) {
	w := filledBasics()
	require.NoError(t, w.Next())
	w.Draft.Beds = 0

	require.NoError(t, w.Back())
	assert.Equal(t, BasicInfo, w.State)
}

func TestToggleAmenity(t *testing.T) {
	w := New()
	w.ToggleAmenity("WiFi")
	w.ToggleAmenity("AC")
	w.ToggleAmenity("WiFi")

	assert.Equal(t, []string{"AC"}, w.Draft.Amenities)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "basic-info", BasicInfo.String())
	assert.Equal(t, "submitted", Submitted.String())
	assert.Equal(t, "Property Details", Details.Title())
	assert.Equal(t, "state(9)", State(9).String())
}

func TestDraftPersistence(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()

	w, err := Load(ctx, storage)
	require.NoError(t, err)
	assert.Equal(t, New(), w)

	w = filledBasics()
	require.NoError(t, w.Next())
	w.ToggleAmenity("Parking")
	require.NoError(t, Save(ctx, storage, w))

	loaded, err := Load(ctx, storage)
	require.NoError(t, err)
	assert.Equal(t, w, loaded)

	require.NoError(t, Reset(ctx, storage))
	loaded, err = Load(ctx, storage)
	require.NoError(t, err)
	assert.Equal(t, BasicInfo, loaded.State)
	assert.Empty(t, loaded.Draft.Title)
}

func TestLoadDiscardsBadDraft(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()

	for _, raw := range []string{"garbage", `{"state":42}`} {
		require.NoError(t, storage.Set(ctx, DraftKey, raw, 0))
		w, err := Load(ctx, storage)
		require.NoError(t, err)
		assert.Equal(t, New(), w, raw)
	}
}
