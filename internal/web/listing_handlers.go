package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
	"github.com/evcraddock/kwartayo/internal/wizard"
)

type listingsData struct {
	page
	Status     search.StatusFilter
	Statuses   []search.StatusFilter
	Properties []listing.Property
	Totals     listing.Engagement
	Created    bool
}

// handleListings renders the owner's listings with engagement totals.
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "My Listings", "listings")
	managed, err := s.listings.ManagedBy(r.Context(), p.User.ID)
	if err != nil {
		s.serverError(w, "loading listings", err)
		return
	}

	status := search.ParseStatusFilter(r.URL.Query().Get("status"))
	s.render(w, "listings.html", listingsData{
		page:       p,
		Status:     status,
		Statuses:   []search.StatusFilter{search.StatusAll, search.StatusActive, search.StatusArchived},
		Properties: status.Apply(managed),
		Totals:     listing.Totals(managed),
		Created:    r.URL.Query().Get("created") == "1",
	})
}

// handleListingDetail renders one of the owner's listings.
func (s *Server) handleListingDetail(w http.ResponseWriter, r *http.Request) {
	prop, ok := s.lookupProperty(w, r)
	if !ok {
		return
	}
	p := s.page(r, prop.Title, "listings")
	if prop.ManagerID != p.User.ID {
		s.notFound(w, r)
		return
	}
	s.render(w, "listing.html", propertyData{page: p, Property: prop})
}

type wizardData struct {
	page
	Wizard    *wizard.Wizard
	Step      int
	Steps     int
	Types     []listing.PropertyType
	Locations []string
	Amenities []string
	Error     string
}

func (s *Server) wizardPage(r *http.Request, wz *wizard.Wizard) wizardData {
	return wizardData{
		page:      s.page(r, "Create Listing", "listings"),
		Wizard:    wz,
		Step:      int(wz.State),
		Steps:     wizard.Steps,
		Types:     listing.PropertyTypes,
		Locations: listing.Locations,
		Amenities: listing.AmenityOptions,
	}
}

// handleWizard renders the current step of the session's draft.
func (s *Server) handleWizard(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	wz, err := wizard.Load(r.Context(), sess.Storage)
	if err != nil {
		s.serverError(w, "loading draft", err)
		return
	}
	if wz.Done() {
		wz = wizard.New()
	}
	s.render(w, "create.html", s.wizardPage(r, wz))
}

// handleWizardSubmit applies the posted step fields, then the requested
// transition: "next", "back", "reset", or an amenity toggle.
func (s *Server) handleWizardSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	sess := auth.SessionFrom(r.Context())
	wz, err := wizard.Load(r.Context(), sess.Storage)
	if err != nil {
		s.serverError(w, "loading draft", err)
		return
	}
	if wz.Done() {
		wz = wizard.New()
	}

	applyStepFields(r, wz)

	var stepErr error
	switch action := r.PostForm.Get("action"); {
	case r.PostForm.Has("toggle"):
		wz.ToggleAmenity(r.PostForm.Get("toggle"))
	case action == "back":
		stepErr = wz.Back()
	case action == "reset":
		wz = wizard.New()
	default:
		stepErr = wz.Next()
	}

	if wz.Done() {
		// Submission does not persist the listing.
		if err := wizard.Reset(r.Context(), sess.Storage); err != nil {
			s.serverError(w, "clearing draft", err)
			return
		}
		http.Redirect(w, r, "/listings?created=1", http.StatusSeeOther)
		return
	}

	if err := wizard.Save(r.Context(), sess.Storage, wz); err != nil {
		s.serverError(w, "saving draft", err)
		return
	}

	if stepErr != nil {
		data := s.wizardPage(r, wz)
		data.Error = stepMessage(stepErr)
		s.render(w, "create.html", data)
		return
	}
	http.Redirect(w, r, "/listings/create", http.StatusSeeOther)
}

// applyStepFields copies the inputs of the wizard's current step from the
// form into the draft.
func applyStepFields(r *http.Request, wz *wizard.Wizard) {
	f := r.PostForm
	d := &wz.Draft
	switch wz.State {
	case wizard.BasicInfo:
		if f.Has("title") {
			d.Title = strings.TrimSpace(f.Get("title"))
		}
		if f.Has("type") {
			d.Type = f.Get("type")
		}
		if f.Has("location") {
			d.Location = f.Get("location")
		}
		if f.Has("price") {
			d.Price = formInt(r, "price")
		}
	case wizard.Details:
		if f.Has("beds") {
			d.Beds = formInt(r, "beds")
		}
		if f.Has("baths") {
			d.Baths = formInt(r, "baths")
		}
	case wizard.Description:
		if f.Has("description") {
			d.Description = strings.TrimSpace(f.Get("description"))
		}
	}
}

func stepMessage(err error) string {
	switch {
	case errors.Is(err, wizard.ErrIncomplete):
		return "Please complete all required fields (" + strings.TrimPrefix(err.Error(), wizard.ErrIncomplete.Error()+": ") + ")"
	case errors.Is(err, wizard.ErrNoPrevious):
		return "This is the first step"
	}
	return err.Error()
}
