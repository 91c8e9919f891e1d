package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evcraddock/kwartayo/internal/listing"
)

func roommateNames(rs []listing.Roommate) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestRoommateCriteria(t *testing.T) {
	rs := listing.FixtureRoommates()

	tests := []struct {
		name string
		c    RoommateCriteria
		want []string
	}{
		{"no filters", RoommateCriteria{}, roommateNames(rs)},
		{"location", RoommateCriteria{Location: "Makati"}, []string{"Sarah Aquino"}},
		{"budget", RoommateCriteria{MaxBudget: 7000}, []string{"Marco Santos"}},
		{"gender", RoommateCriteria{Gender: listing.GenderFemale}, []string{"Sarah Aquino", "Jessica Reyes", "Lisa Gonzales"}},
		{"text on occupation", RoommateCriteria{Query: "engineer"}, []string{"Alex Rivera"}},
		{"text on name", RoommateCriteria{Query: "SANTOS"}, []string{"Marco Santos"}},
		{"combined", RoommateCriteria{Gender: listing.GenderMale, MaxBudget: 8000}, []string{"Alex Rivera", "Marco Santos", "Daniel Marcos"}},
		{"nothing", RoommateCriteria{Location: "Cavite"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roommateNames(tt.c.Apply(rs)))
		})
	}
}

func TestParseRoommateQuery(t *testing.T) {
	c := ParseRoommateQuery(url.Values{
		"location":  {"Pasig"},
		"maxBudget": {"9000"},
		"gender":    {"Other"},
		"q":         {" student "},
	})

	assert.Equal(t, RoommateCriteria{Location: "Pasig", MaxBudget: 9000, Query: "student"}, c)
	assert.Equal(t, c, ParseRoommateQuery(c.Values()))
}

func TestStatusFilter(t *testing.T) {
	props := listing.FixtureProperties()[:3]

	assert.Len(t, ParseStatusFilter("").Apply(props), 3)
	assert.Len(t, ParseStatusFilter("active").Apply(props), 2)

	archived := ParseStatusFilter("archived").Apply(props)
	if assert.Len(t, archived, 1) {
		assert.Equal(t, int64(3), archived[0].ID)
	}
	assert.Equal(t, StatusAll, ParseStatusFilter("deleted"))
}
