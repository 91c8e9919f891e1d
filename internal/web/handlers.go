package web

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/favorite"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

// page holds what the layout needs on every view.
type page struct {
	Title string
	Nav   string
	User  *auth.User
	// Role is the signed-in user's role, or the role picked on the home
	// page when nobody is signed in.
	Role auth.Role
}

func (s *Server) page(r *http.Request, title, nav string) page {
	p := page{Title: title, Nav: nav}
	if u, ok := auth.CurrentUser(r.Context()); ok {
		p.User = &u
		p.Role = u.Role
	}
	return p
}

type homeData struct {
	page
	Status       search.StatusFilter
	Statuses     []search.StatusFilter
	Sort         search.SortKey
	RoommateSort string
	Properties   []listing.Property
	Roommates    []listing.Roommate
	Favorites    map[int64]bool
}

// handleHome renders the hero until a role is chosen, then the role's feed.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Find your next room", "home")
	if p.Role == "" {
		if role, ok := auth.ParseRole(r.URL.Query().Get("role")); ok {
			p.Role = role
		}
	}

	data := homeData{page: p, Statuses: []search.StatusFilter{search.StatusAll, search.StatusActive, search.StatusArchived}}
	if p.Role == "" {
		s.render(w, "home.html", data)
		return
	}

	props, err := s.listings.Properties(r.Context())
	if err != nil {
		s.serverError(w, "loading properties", err)
		return
	}

	q := r.URL.Query()
	switch p.Role {
	case auth.RoleOwner:
		data.Status = search.ParseStatusFilter(q.Get("status"))
		data.Properties = data.Status.Apply(props)
	case auth.RoleSeeker:
		data.Sort = search.ParseSortKey(q.Get("sort"))
		data.Properties = search.SortStable(listing.Active(props), search.PropertyComparator(data.Sort))

		roommates, err := s.listings.Roommates(r.Context())
		if err != nil {
			s.serverError(w, "loading roommates", err)
			return
		}
		data.RoommateSort = q.Get("rsort")
		if data.RoommateSort == "rating" {
			roommates = search.SortStable(roommates, func(a, b listing.Roommate) int { return cmp.Compare(b.Rating, a.Rating) })
		} else {
			data.RoommateSort = "recent"
		}
		data.Roommates = roommates
	}

	data.Favorites = s.favoriteIDs(r)
	s.render(w, "home.html", data)
}

type searchData struct {
	page
	Criteria   search.PropertyCriteria
	Encoded    string
	Properties []listing.Property
	Favorites  map[int64]bool
	Locations  []string
	Amenities  []string
	SortKeys   []search.SortKey
	Counts     []int
}

// handleSearch renders the property search with filters from the query
// string.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	criteria := search.ParsePropertyQuery(r.URL.Query())

	props, err := s.listings.Properties(r.Context())
	if err != nil {
		s.serverError(w, "loading properties", err)
		return
	}

	s.render(w, "search.html", searchData{
		page:       s.page(r, "Search", "search"),
		Criteria:   criteria,
		Encoded:    criteria.Encode(),
		Properties: criteria.Apply(listing.Active(props)),
		Favorites:  s.favoriteIDs(r),
		Locations:  listing.Locations,
		Amenities:  listing.AmenityOptions,
		SortKeys:   search.SortKeys,
		Counts:     []int{1, 2, 3, 4},
	})
}

type roommatesData struct {
	page
	Criteria  search.RoommateCriteria
	Roommates []listing.Roommate
	Locations []string
}

// handleRoommates renders the roommate browser.
func (s *Server) handleRoommates(w http.ResponseWriter, r *http.Request) {
	criteria := search.ParseRoommateQuery(r.URL.Query())

	roommates, err := s.listings.Roommates(r.Context())
	if err != nil {
		s.serverError(w, "loading roommates", err)
		return
	}

	s.render(w, "roommates.html", roommatesData{
		page:      s.page(r, "Roommates", "roommates"),
		Criteria:  criteria,
		Roommates: criteria.Apply(roommates),
		Locations: listing.Locations,
	})
}

type propertyData struct {
	page
	Property  listing.Property
	Favorited bool
}

// handlePropertyDetail renders the public page of an active property.
func (s *Server) handlePropertyDetail(w http.ResponseWriter, r *http.Request) {
	prop, ok := s.lookupProperty(w, r)
	if !ok {
		return
	}
	if !prop.IsActive() {
		s.notFound(w, r)
		return
	}

	s.render(w, "property.html", propertyData{
		page:      s.page(r, prop.Title, "search"),
		Property:  prop,
		Favorited: s.favoriteIDs(r)[prop.ID],
	})
}

// lookupProperty resolves the {id} path value, writing a 404 when it does
// not name a property.
func (s *Server) lookupProperty(w http.ResponseWriter, r *http.Request) (listing.Property, bool) {
	id, err := pathID(r)
	if err != nil {
		s.notFound(w, r)
		return listing.Property{}, false
	}

	prop, err := s.listings.Property(r.Context(), id)
	if errors.Is(err, listing.ErrNotFound) {
		s.notFound(w, r)
		return listing.Property{}, false
	}
	if err != nil {
		s.serverError(w, "loading property", err)
		return listing.Property{}, false
	}
	return prop, true
}

// favoriteIDs returns the saved property ids of a signed-in seeker.
func (s *Server) favoriteIDs(r *http.Request) map[int64]bool {
	sess := auth.SessionFrom(r.Context())
	if u, ok := auth.CurrentUser(r.Context()); !ok || u.Role != auth.RoleSeeker || sess == nil {
		return nil
	}
	ids, err := favorite.NewStore(sess.Storage).IDs(r.Context())
	if err != nil {
		slog.Warn("loading favorites", "error", err)
		return nil
	}
	return ids
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	s.render(w, "not_found.html", s.page(r, "Page not found", ""))
}

func (s *Server) serverError(w http.ResponseWriter, what string, err error) {
	slog.Error(what, "error", err)
	http.Error(w, fmt.Sprintf("Error %s: %v", what, err), http.StatusInternalServerError)
}

// render executes a full page template with layout.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// localRedirect returns target when it is a path on this site, else
// fallback.
func localRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
