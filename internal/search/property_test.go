package search

import (
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/kwartayo/internal/listing"
)

// reference is an independent, direct reading of the matching rules used
// to check the pipeline.
func reference(c PropertyCriteria, p listing.Property) bool {
	if c.Location != "" && p.Location != c.Location {
		return false
	}
	if c.MinPrice > 0 && p.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && p.Price > c.MaxPrice {
		return false
	}
	if len(c.Bedrooms) > 0 && !slices.Contains(c.Bedrooms, p.Beds) {
		return false
	}
	if len(c.Bathrooms) > 0 && !slices.Contains(c.Bathrooms, p.Baths) {
		return false
	}
	for _, a := range c.Amenities {
		if !slices.Contains(p.Amenities, a) {
			return false
		}
	}
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Location), q) {
			return false
		}
	}
	return true
}

func criteriaGrid() []PropertyCriteria {
	var out []PropertyCriteria
	for _, loc := range []string{"", "Makati", "Quezon City", "Cavite"} {
		for _, lo := range []int{0, 7000} {
			for _, hi := range []int{0, 9000} {
				for _, beds := range [][]int{nil, {1}, {2, 3}} {
					for _, baths := range [][]int{nil, {1}, {2}} {
						for _, am := range [][]string{nil, {"WiFi"}, {"WiFi", "Parking"}} {
							for _, q := range []string{"", "ROOM", "makati"} {
								out = append(out, PropertyCriteria{
									Location: loc, MinPrice: lo, MaxPrice: hi,
									Bedrooms: beds, Bathrooms: baths,
									Amenities: am, Query: q,
								})
							}
						}
					}
				}
			}
		}
	}
	return out
}

func TestPropertyFilterCompleteAndSound(t *testing.T) {
	props := listing.FixtureProperties()

	for _, c := range criteriaGrid() {
		got := Filter(props, c.Predicates()...)

		var want []listing.Property
		for _, p := range props {
			if reference(c, p) {
				want = append(want, p)
			}
		}

		require.Len(t, got, len(want), "criteria %+v", c)
		for i := range got {
			assert.Equal(t, want[i].ID, got[i].ID, "criteria %+v", c)
			assert.True(t, c.Match(got[i]))
		}
	}
}

func TestAmenitiesRequireSuperset(t *testing.T) {
	onlyWiFi := listing.Property{ID: 1, Amenities: []string{"WiFi"}}
	both := listing.Property{ID: 2, Amenities: []string{"WiFi", "AC", "Parking"}}

	c := PropertyCriteria{Amenities: []string{"WiFi", "Parking"}}
	got := Filter([]listing.Property{onlyWiFi, both}, c.Predicates()...)

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestPriceRangeIsInclusive(t *testing.T) {
	props := []listing.Property{{ID: 1, Price: 3000}, {ID: 2, Price: 30000}, {ID: 3, Price: 30001}}
	c := PropertyCriteria{MinPrice: 3000, MaxPrice: 30000}

	got := Filter(props, c.Predicates()...)
	assert.Len(t, got, 2)
}

func TestSortByPriceNonDecreasing(t *testing.T) {
	got := SortStable(listing.FixtureProperties(), ByPrice)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestSortByRatingNonIncreasingAndStable(t *testing.T) {
	got := SortStable(listing.FixtureProperties(), ByRating)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Rating, got[i].Rating)
	}

	// Properties 1 and 6 share a 4.8 rating and must keep input order.
	var tied []int64
	for _, p := range got {
		if p.Rating == 4.8 {
			tied = append(tied, p.ID)
		}
	}
	assert.Equal(t, []int64{1, 6}, tied)
}

func TestSortStableTiesOnPrice(t *testing.T) {
	props := []listing.Property{
		{ID: 1, Price: 9000}, {ID: 2, Price: 5000}, {ID: 3, Price: 9000}, {ID: 4, Price: 5000},
	}
	got := SortStable(props, ByPrice)

	ids := make([]int64, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.Equal(t, []int64{2, 4, 1, 3}, ids)
}

func TestSortByMatchAndRecent(t *testing.T) {
	ids := func(ps []listing.Property) []int64 {
		out := make([]int64, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}
	props := listing.FixtureProperties()

	assert.Equal(t, []int64{1, 5, 3, 2, 6, 4}, ids(SortStable(props, ByMatch)))
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(SortStable(props, ByRecent)))
}

func TestApplyUsesSortKey(t *testing.T) {
	c := PropertyCriteria{Sort: SortPrice, Amenities: []string{"WiFi"}}
	got := c.Apply(listing.FixtureProperties())

	require.NotEmpty(t, got)
	assert.Equal(t, 6500, got[0].Price)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPrice, ParseSortKey("price"))
	assert.Equal(t, SortRating, ParseSortKey("rating"))
	assert.Equal(t, SortMatch, ParseSortKey("match"))
	assert.Equal(t, SortRecent, ParseSortKey("recent"))
	assert.Equal(t, SortRecent, ParseSortKey("bogus"))
	assert.Equal(t, SortRecent, ParseSortKey(""))
}

func TestParsePropertyQueryDefaults(t *testing.T) {
	c := ParsePropertyQuery(url.Values{})

	assert.Equal(t, PropertyCriteria{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Sort:     SortRecent,
	}, c)
}

func TestParsePropertyQuery(t *testing.T) {
	q, err := url.ParseQuery("location=Makati&minPrice=5000&maxPrice=abc&bedrooms=1,x,2&bathrooms=2&amenities=WiFi,,Kitchen&q=share&sort=price")
	require.NoError(t, err)

	c := ParsePropertyQuery(q)

	assert.Equal(t, "Makati", c.Location)
	assert.Equal(t, 5000, c.MinPrice)
	assert.Equal(t, DefaultMaxPrice, c.MaxPrice, "malformed price falls back to default")
	assert.Equal(t, []int{1, 2}, c.Bedrooms)
	assert.Equal(t, []int{2}, c.Bathrooms)
	assert.Equal(t, []string{"WiFi", "Kitchen"}, c.Amenities)
	assert.Equal(t, "share", c.Query)
	assert.Equal(t, SortPrice, c.Sort)
}

func TestParsePropertyQueryRepeatedKeys(t *testing.T) {
	q, err := url.ParseQuery("bedrooms=1&bedrooms=3&amenities=WiFi&amenities=Pool,Gym")
	require.NoError(t, err)

	c := ParsePropertyQuery(q)

	assert.Equal(t, []int{1, 3}, c.Bedrooms)
	assert.Equal(t, []string{"WiFi", "Pool", "Gym"}, c.Amenities)
}

func TestEncodeRoundTrip(t *testing.T) {
	c := PropertyCriteria{
		Location:  "Quezon City",
		MinPrice:  4000,
		MaxPrice:  12000,
		Bedrooms:  []int{1, 2},
		Amenities: []string{"WiFi", "AC"},
		Sort:      SortRating,
	}

	q, err := url.ParseQuery(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, "1,2", q.Get("bedrooms"))
	assert.Equal(t, "WiFi,AC", q.Get("amenities"))
	assert.Equal(t, c, ParsePropertyQuery(q))
}
