package listing

import "time"

const unsplash = "https://images.unsplash.com/"

// Avatars of fixture owners. Exported so the message and moderation
// fixtures can reference the same people.
const (
	AvatarMaria    = unsplash + "photo-1494790108377-be9c29b29330?w=400&h=400&fit=crop"
	AvatarJohn     = unsplash + "photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop"
	AvatarAna      = unsplash + "photo-1438761681033-6461ffad8d80?w=400&h=400&fit=crop"
	AvatarRobert   = unsplash + "photo-1500648767791-00dcc994a43e?w=400&h=400&fit=crop"
	AvatarPatricia = unsplash + "photo-1494790108377-be9c29b29330?w=400&h=400&fit=crop"
	AvatarLuis     = unsplash + "photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop"
)

// MariaUserID is the directory id of the demo owner account, which manages
// the first three fixture listings.
const MariaUserID = "1"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// FixtureProperties returns the shared property fixture set.
func FixtureProperties() []Property {
	return []Property{
		{
			ID:        1,
			Title:     "Cozy Room near UP Diliman",
			Location:  "Quezon City",
			Price:     8500,
			Beds:      1,
			Baths:     1,
			Amenities: []string{"WiFi", "AC", "Parking"},
			ImageURL:  unsplash + "photo-1522708323590-d24dbb6b0267?w=400&h=300&fit=crop",
			Owner:     Owner{Name: "Maria Santos", AvatarURL: AvatarMaria},
			ManagerID: MariaUserID,
			Verified:  true,
			Badge:     BadgeUpdated,
			Rating:    4.8,
			Reviews:   12,
			Status:    StatusActive,
			Engagement: Engagement{
				Views: 145, Favorites: 23, Inquiries: 5,
			},
			Description: "A comfortable and cozy room perfect for students and professionals. " +
				"Located near UP Diliman campus with easy access to major transportation. " +
				"The room comes with WiFi, air conditioning, and a secure parking space.",
			ListedAt:   day(2024, time.January, 20),
			MatchScore: 98,
		},
		{
			ID:        2,
			Title:     "2 Rooms in Share House",
			Location:  "Makati",
			Price:     7500,
			Beds:      2,
			Baths:     2,
			Amenities: []string{"WiFi", "Kitchen", "Laundry"},
			ImageURL:  unsplash + "photo-1502672260266-1c1ef2d93688?w=400&h=300&fit=crop",
			Owner:     Owner{Name: "John Cruz", AvatarURL: AvatarJohn},
			ManagerID: MariaUserID,
			Verified:  true,
			Badge:     BadgeBoosted,
			Rating:    4.6,
			Reviews:   8,
			Status:    StatusActive,
			Engagement: Engagement{
				Views: 89, Favorites: 14, Inquiries: 3,
			},
			Description: "Two bedrooms in a friendly share house close to the Makati CBD. Shared kitchen and laundry area.",
			ListedAt:    day(2024, time.January, 18),
			MatchScore:  87,
		},
		{
			ID:        3,
			Title:     "Whole Property for Rent",
			Location:  "Muntinlupa",
			Price:     12000,
			Beds:      3,
			Baths:     2,
			Amenities: []string{"WiFi", "Parking", "Garden"},
			ImageURL:  unsplash + "photo-1564013799919-ab600027ffc6?w=400&h=300&fit=crop",
			Owner:     Owner{Name: "Ana Garcia", AvatarURL: AvatarAna},
			ManagerID: MariaUserID,
			Verified:  true,
			Badge:     BadgeNew,
			Rating:    4.9,
			Reviews:   5,
			Status:    StatusArchived,
			Engagement: Engagement{
				Views: 234, Favorites: 32, Inquiries: 8,
			},
			Description: "A three-bedroom house with a garden and covered parking in a quiet Muntinlupa village.",
			ListedAt:    day(2024, time.January, 15),
			MatchScore:  92,
		},
		{
			ID:        4,
			Title:     "Studio Apartment Ortigas",
			Location:  "Pasig",
			Price:     9500,
			Beds:      1,
			Baths:     1,
			Amenities: []string{"WiFi", "AC", "Security"},
			ImageURL:  unsplash + "photo-1502672260266-1c1ef2d93688?w=400&h=300&fit=crop",
			Owner:     Owner{Name: "Robert De Luna", AvatarURL: AvatarRobert},
			Verified:  false,
			Badge:     BadgeUpdated,
			Rating:    4.5,
			Reviews:   6,
			Status:    StatusActive,
			Engagement: Engagement{
				Views: 61, Favorites: 9, Inquiries: 2,
			},
			Description: "Compact studio in Ortigas Center with 24/7 security, walking distance to malls.",
			ListedAt:    day(2024, time.January, 12),
			MatchScore:  75,
		},
		{
			ID:        5,
			Title:     "Shared Room BGC",
			Location:  "Taguig",
			Price:     6500,
			Beds:      1,
			Baths:     1,
			Amenities: []string{"WiFi", "AC"},
			ImageURL:  unsplash + "photo-1516455207990-7912a373a7f7?w=400&h=300&fit=crop",
			Owner:     Owner{Name: "Patricia Reyes", AvatarURL: AvatarPatricia},
			Verified:  true,
			Badge:     BadgeBoosted,
			Rating:    4.7,
			Reviews:   15,
			Status:    StatusActive,
			Engagement: Engagement{
				Views: 120, Favorites: 18, Inquiries: 6,
			},
			Description: "Bed space in a shared room at Bonifacio Global City. Ideal for young professionals.",
			ListedAt:    day(2024, time.January, 10),
			MatchScore:  94,
		},
		{
			ID:        6,
			Title:     "Modern Condo Unit Makati",
			Location:  "Makati",
			Price:     11000,
			Beds:      2,
			Baths:     1,
			Amenities: []string{"WiFi", "Gym", "Pool"},
			ImageURL:  unsplash + "photo-1576356270509-b3cce4899289?w=400&h=300&fit=crop",
			Owner:     Owner{Name: "Luis Fernandez", AvatarURL: AvatarLuis},
			Verified:  true,
			Rating:    4.8,
			Reviews:   20,
			Status:    StatusActive,
			Engagement: Engagement{
				Views: 198, Favorites: 27, Inquiries: 7,
			},
			Description: "Fully furnished two-bedroom condo with building gym and pool access.",
			ListedAt:    day(2024, time.January, 8),
			MatchScore:  86,
		},
	}
}

// FixtureRoommates returns the shared roommate fixture set.
func FixtureRoommates() []Roommate {
	return []Roommate{
		{
			ID: 1, Name: "Alex Rivera", Age: 24, Gender: GenderMale,
			ImageURL:   unsplash + "photo-1507003211169-0a1dd7228f2d?w=400&h=300&fit=crop",
			Location:   "Quezon City",
			Occupation: "Software Engineer",
			Budget:     8000,
			MoveIn:     "Mar 2024",
			Bio:        "Looking for a quiet, clean space. Love coding and gaming on weekends.",
			Interests:  []string{"Gaming", "Tech", "Fitness", "Cooking"},
			Verified:   true, Rating: 4.9, Reviews: 8,
		},
		{
			ID: 2, Name: "Sarah Aquino", Age: 26, Gender: GenderFemale,
			ImageURL:   unsplash + "photo-1494790108377-be9c29b29330?w=400&h=300&fit=crop",
			Location:   "Makati",
			Occupation: "Marketing Manager",
			Budget:     9500,
			MoveIn:     "Feb 2024",
			Bio:        "Professional looking for a comfortable place near work. Quiet and respectful.",
			Interests:  []string{"Design", "Yoga", "Travel", "Reading"},
			Verified:   true, Rating: 4.8, Reviews: 12,
		},
		{
			ID: 3, Name: "Marco Santos", Age: 23, Gender: GenderMale,
			ImageURL:   unsplash + "photo-1500648767791-00dcc994a43e?w=400&h=300&fit=crop",
			Location:   "Pasig",
			Occupation: "Student",
			Budget:     6500,
			MoveIn:     "Jan 2024",
			Bio:        "College student looking for affordable shared accommodation. Very friendly!",
			Interests:  []string{"Basketball", "Movies", "Hanging out", "Music"},
			Verified:   true, Rating: 4.7, Reviews: 5,
		},
		{
			ID: 4, Name: "Jessica Reyes", Age: 27, Gender: GenderFemale,
			ImageURL:   unsplash + "photo-1438761681033-6461ffad8d80?w=400&h=300&fit=crop",
			Location:   "Taguig",
			Occupation: "Architect",
			Budget:     10000,
			MoveIn:     "Apr 2024",
			Bio:        "Creative professional seeking a modern space with good vibes and friendly roommates.",
			Interests:  []string{"Architecture", "Art", "Cooking", "Exploring"},
			Verified:   true, Rating: 4.9, Reviews: 10,
		},
		{
			ID: 5, Name: "Daniel Marcos", Age: 25, Gender: GenderMale,
			ImageURL:   unsplash + "photo-1507003211169-0a1dd7228f2d?w=400&h=300&fit=crop",
			Location:   "Muntinlupa",
			Occupation: "Accountant",
			Budget:     7800,
			MoveIn:     "Mar 2024",
			Bio:        "Organized and responsible person. Prefer clean, quiet environment with shared meals.",
			Interests:  []string{"Finance", "Hiking", "Podcasts", "Volunteering"},
			Verified:   false, Rating: 4.6, Reviews: 7,
		},
		{
			ID: 6, Name: "Lisa Gonzales", Age: 28, Gender: GenderFemale,
			ImageURL:   unsplash + "photo-1494790108377-be9c29b29330?w=400&h=300&fit=crop",
			Location:   "BGC",
			Occupation: "HR Specialist",
			Budget:     9200,
			MoveIn:     "Feb 2024",
			Bio:        "Friendly professional who loves meeting new people. Enjoy movie nights and dinners.",
			Interests:  []string{"Networking", "Fitness", "Dining", "Travel"},
			Verified:   true, Rating: 4.8, Reviews: 14,
		},
	}
}
