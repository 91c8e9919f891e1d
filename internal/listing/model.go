// Package listing provides the property and roommate domain models and the
// repository every view reads them through.
package listing

import (
	"slices"
	"time"
)

// Status is a property's listing state.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// ValidStatus returns true if s is a known listing status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusArchived:
		return true
	}
	return false
}

// Badge is an optional promotional label shown on a property card.
type Badge string

const (
	BadgeNone    Badge = ""
	BadgeNew     Badge = "NEW"
	BadgeUpdated Badge = "UPDATED"
	BadgeBoosted Badge = "BOOSTED"
)

// Owner identifies who lists a property.
type Owner struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Engagement holds the counters shown on an owner's listings page.
type Engagement struct {
	Views     int `json:"views"`
	Favorites int `json:"favorites"`
	Inquiries int `json:"inquiries"`
}

// Property is a room, unit or whole property offered for rent.
type Property struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	Price       int        `json:"price"`
	Beds        int        `json:"beds"`
	Baths       int        `json:"baths"`
	Amenities   []string   `json:"amenities"`
	ImageURL    string     `json:"image_url"`
	Owner       Owner      `json:"owner"`
	ManagerID   string     `json:"manager_id,omitempty"`
	Verified    bool       `json:"verified"`
	Badge       Badge      `json:"badge,omitempty"`
	Rating      float64    `json:"rating"`
	Reviews     int        `json:"reviews"`
	Status      Status     `json:"status"`
	Engagement  Engagement `json:"engagement"`
	Description string     `json:"description,omitempty"`
	ListedAt    time.Time  `json:"listed_at"`
	MatchScore  int        `json:"match_score,omitempty"`
}

// IsActive reports whether the property is visible to seekers.
func (p Property) IsActive() bool {
	return p.Status == StatusActive
}

// HasAmenity reports whether the property offers the named amenity.
func (p Property) HasAmenity(name string) bool {
	return slices.Contains(p.Amenities, name)
}

func (p Property) clone() Property {
	p.Amenities = slices.Clone(p.Amenities)
	return p
}

// Gender of a roommate profile.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Roommate is a seeker profile looking for a shared place.
type Roommate struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Gender     Gender   `json:"gender"`
	ImageURL   string   `json:"image_url"`
	Location   string   `json:"location"`
	Occupation string   `json:"occupation"`
	Budget     int      `json:"budget"`
	MoveIn     string   `json:"move_in"`
	Bio        string   `json:"bio"`
	Interests  []string `json:"interests"`
	Verified   bool     `json:"verified"`
	Rating     float64  `json:"rating"`
	Reviews    int      `json:"reviews"`
}

func (r Roommate) clone() Roommate {
	r.Interests = slices.Clone(r.Interests)
	return r
}

// Locations are the areas offered in location pickers.
var Locations = []string{
	"Quezon City",
	"Makati",
	"Manila",
	"Pasig",
	"Taguig",
	"Muntinlupa",
	"Cavite",
	"Laguna",
}

// AmenityOptions are the amenities offered in search filters and the
// listing wizard.
var AmenityOptions = []string{
	"WiFi",
	"AC",
	"Heating",
	"Kitchen",
	"Parking",
	"Laundry",
	"TV",
	"Washer",
	"Dryer",
	"Dishwasher",
	"Security",
	"Garden",
	"Gym",
	"Pool",
}

// PropertyType is the kind of listing an owner can create.
type PropertyType struct {
	Value string
	Label string
}

// PropertyTypes are offered by the listing wizard.
var PropertyTypes = []PropertyType{
	{Value: "room", Label: "Single Room"},
	{Value: "rooms", Label: "Multiple Rooms"},
	{Value: "property", Label: "Whole Property"},
}
