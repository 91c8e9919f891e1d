package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/favorite"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/message"
	"github.com/evcraddock/kwartayo/internal/preference"
	"github.com/evcraddock/kwartayo/internal/search"
)

type statCard struct {
	Label string
	Value string
	Tag   string
}

type dashboardData struct {
	page
	Stats    []statCard
	Listings []listing.Property
}

// handleDashboard renders the role's stat cards and listing section.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Dashboard", "dashboard")
	data := dashboardData{page: p}

	switch p.User.Role {
	case auth.RoleOwner:
		managed, err := s.listings.ManagedBy(r.Context(), p.User.ID)
		if err != nil {
			s.serverError(w, "loading listings", err)
			return
		}
		totals := listing.Totals(managed)
		data.Listings = managed
		data.Stats = []statCard{
			{Label: "Active Listings", Value: tmplNumber(len(listing.Active(managed))), Tag: "Active"},
			{Label: "Total Views", Value: tmplNumber(totals.Views), Tag: "This Month"},
			{Label: "Favorited", Value: tmplNumber(totals.Favorites)},
			{Label: "Inquiries", Value: tmplNumber(totals.Inquiries)},
		}
	default:
		props, err := s.listings.Properties(r.Context())
		if err != nil {
			s.serverError(w, "loading properties", err)
			return
		}
		recommended := search.SortStable(listing.Active(props), search.ByMatch)
		if len(recommended) > 3 {
			recommended = recommended[:3]
		}

		inbox, err := s.messages.Inbox(r.Context(), p.User.ID, message.Criteria{})
		if err != nil {
			s.serverError(w, "loading messages", err)
			return
		}

		data.Listings = recommended
		data.Stats = []statCard{
			{Label: "Saved Properties", Value: tmplNumber(len(s.favoriteIDs(r)))},
			{Label: "Unread Messages", Value: tmplNumber(inbox.TotalUnread)},
			{Label: "Recommended", Value: tmplNumber(len(recommended))},
			{Label: "Applications", Value: "3"},
		}
	}

	s.render(w, "dashboard.html", data)
}

type profileData struct {
	page
	Saved bool
}

// handleProfile renders the profile page.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.render(w, "profile.html", profileData{
		page:  s.page(r, "Profile", "profile"),
		Saved: r.URL.Query().Get("saved") == "1",
	})
}

// handleProfileSubmit merges the edited fields into the signed-in user.
func (s *Server) handleProfileSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var patch auth.Patch
	for field, dst := range map[string]**string{
		"name":     &patch.Name,
		"bio":      &patch.Bio,
		"phone":    &patch.Phone,
		"location": &patch.Location,
	} {
		if _, ok := r.PostForm[field]; ok {
			v := strings.TrimSpace(r.PostForm.Get(field))
			*dst = &v
		}
	}

	sess := auth.SessionFrom(r.Context())
	if _, _, err := sess.Auth.UpdateProfile(r.Context(), patch); err != nil {
		s.serverError(w, "updating profile", err)
		return
	}
	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

type favoritesData struct {
	page
	Sort      search.SortKey
	SortKeys  []search.SortKey
	Favorites []favorite.Favorite
}

// handleFavorites renders the session's saved properties.
func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	saved, err := favorite.NewStore(sess.Storage).List(r.Context())
	if err != nil {
		s.serverError(w, "loading favorites", err)
		return
	}

	props, err := s.listings.Properties(r.Context())
	if err != nil {
		s.serverError(w, "loading properties", err)
		return
	}

	key := search.ParseSortKey(r.URL.Query().Get("sort"))
	s.render(w, "favorites.html", favoritesData{
		page:      s.page(r, "Favorites", "favorites"),
		Sort:      key,
		SortKeys:  search.SortKeys,
		Favorites: favorite.Sort(favorite.Resolve(props, saved), key),
	})
}

// handleFavoriteToggle saves or unsaves a property and returns to the
// page that posted the form.
func (s *Server) handleFavoriteToggle(w http.ResponseWriter, r *http.Request) {
	prop, ok := s.lookupProperty(w, r)
	if !ok {
		return
	}

	sess := auth.SessionFrom(r.Context())
	if _, err := favorite.NewStore(sess.Storage).Toggle(r.Context(), prop.ID); err != nil {
		s.serverError(w, "saving favorite", err)
		return
	}
	http.Redirect(w, r, localRedirect(r.FormValue("next"), "/favorites"), http.StatusSeeOther)
}

type recommendationsData struct {
	page
	Properties []listing.Property
	Favorites  map[int64]bool
	Personal   bool
}

// handleRecommendations renders active properties by match score, narrowed
// to the seeker's saved preferences once there are any.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	props, err := s.listings.Properties(r.Context())
	if err != nil {
		s.serverError(w, "loading properties", err)
		return
	}

	sess := auth.SessionFrom(r.Context())
	prefs, saved, err := preference.Lookup(r.Context(), sess.Storage)
	if err != nil {
		s.serverError(w, "loading preferences", err)
		return
	}

	recs := search.SortStable(listing.Active(props), search.ByMatch)
	if saved {
		recs = prefs.Recommend(props)
	}
	s.render(w, "recommendations.html", recommendationsData{
		page:       s.page(r, "Recommended for you", "recommendations"),
		Properties: recs,
		Favorites:  s.favoriteIDs(r),
		Personal:   saved,
	})
}

type preferencesData struct {
	page
	Prefs      preference.Preferences
	Locations  []string
	Amenities  []string
	LeaseTerms []string
	Counts     []int
	Saved      bool
	Error      string
}

func (s *Server) preferencesPage(r *http.Request, prefs preference.Preferences) preferencesData {
	return preferencesData{
		page:       s.page(r, "Preferences", "preferences"),
		Prefs:      prefs,
		Locations:  listing.Locations,
		Amenities:  listing.AmenityOptions,
		LeaseTerms: preference.LeaseTerms,
		Counts:     []int{1, 2, 3, 4},
	}
}

// handlePreferences renders the seeker's saved preferences.
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	prefs, err := preference.Load(r.Context(), sess.Storage)
	if err != nil {
		s.serverError(w, "loading preferences", err)
		return
	}

	data := s.preferencesPage(r, prefs)
	data.Saved = r.URL.Query().Get("saved") == "1"
	s.render(w, "preferences.html", data)
}

// handlePreferencesSubmit stores the preferences and copies the chosen
// areas into the profile location.
func (s *Server) handlePreferencesSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	prefs := preference.Preferences{
		BudgetMin: formInt(r, "budget_min"),
		BudgetMax: formInt(r, "budget_max"),
		Locations: r.PostForm["locations"],
		Bedrooms:  formInts(r, "bedrooms"),
		Bathrooms: formInts(r, "bathrooms"),
		Amenities: r.PostForm["amenities"],
		MoveIn:    strings.TrimSpace(r.PostForm.Get("move_in")),
		LeaseTerm: r.PostForm.Get("lease_term"),
	}

	sess := auth.SessionFrom(r.Context())
	err := preference.Save(r.Context(), sess.Storage, prefs)
	if errors.Is(err, preference.ErrBudgetRange) {
		data := s.preferencesPage(r, prefs)
		data.Error = "Minimum budget must not exceed maximum budget"
		s.render(w, "preferences.html", data)
		return
	}
	if err != nil {
		s.serverError(w, "saving preferences", err)
		return
	}

	if _, _, err := sess.Auth.UpdateProfile(r.Context(), prefs.ProfilePatch()); err != nil {
		s.serverError(w, "updating profile", err)
		return
	}
	http.Redirect(w, r, "/preferences?saved=1", http.StatusSeeOther)
}

// formInt parses a form value, treating anything unparseable as zero.
func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func formInts(r *http.Request, key string) []int {
	var out []int
	for _, v := range r.PostForm[key] {
		if n, err := strconv.Atoi(v); err == nil {
			out = append(out, n)
		}
	}
	return out
}
