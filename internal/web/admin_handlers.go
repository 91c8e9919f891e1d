package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/evcraddock/kwartayo/internal/moderation"
)

// Admin dashboard tabs.
const (
	tabVerifications = "verifications"
	tabReports       = "reports"
	tabAnalytics     = "analytics"
)

type adminLoginData struct {
	page
	Email string
	Error string
}

type adminData struct {
	page
	Tab          string
	Tabs         []string
	Criteria     moderation.Criteria
	Filters      []moderation.StatusFilter
	Requests     []moderation.Request
	Flagged      []moderation.FlaggedListing
	Stats        moderation.Stats
	ListingStats moderation.ListingStats
	Flash        string
}

// handleAdminLoginPage renders the admin console login.
func (s *Server) handleAdminLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "admin_login.html", adminLoginData{page: s.page(r, "Admin Login", "admin")})
}

// handleAdminLoginSubmit issues the admin token cookie.
func (s *Server) handleAdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	token, err := s.admin.Login(email, r.FormValue("password"))
	s.metrics.ObserveLogin("admin", err == nil)
	if err != nil {
		s.render(w, "admin_login.html", adminLoginData{
			page:  s.page(r, "Admin Login", "admin"),
			Email: email,
			Error: "Invalid admin credentials",
		})
		return
	}

	s.admin.SetCookie(w, token)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// handleAdminLogout clears the admin cookie.
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	s.admin.ClearCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// handleAdminDashboard renders the moderation console. Every render reads
// the queue afresh, so decisions show up immediately.
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := adminData{
		page:     s.page(r, "Admin Dashboard", "admin"),
		Tab:      tabVerifications,
		Tabs:     []string{tabVerifications, tabReports, tabAnalytics},
		Criteria: moderation.Criteria{Status: moderation.ParseStatusFilter(q.Get("status")), Query: q.Get("q")},
		Filters:  moderation.StatusFilters,
		Flash:    q.Get("flash"),
	}
	switch t := q.Get("tab"); t {
	case tabReports, tabAnalytics:
		data.Tab = t
	}

	var err error
	if data.Stats, err = s.moderation.Stats(r.Context()); err != nil {
		s.serverError(w, "loading stats", err)
		return
	}

	switch data.Tab {
	case tabVerifications:
		data.Requests, err = s.moderation.Requests(r.Context(), data.Criteria)
	case tabReports:
		data.Flagged, err = s.moderation.Flagged(r.Context())
	case tabAnalytics:
		data.ListingStats = s.moderation.ListingStats()
	}
	if err != nil {
		s.serverError(w, "loading moderation queue", err)
		return
	}

	s.render(w, "admin.html", data)
}

// handleApprove approves a pending verification request.
func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.notFound(w, r)
		return
	}
	req, err := s.moderation.Approve(r.Context(), id)
	s.afterDecision(w, r, req, err)
}

// handleReject rejects a pending verification request.
func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.notFound(w, r)
		return
	}
	req, err := s.moderation.Reject(r.Context(), id, r.FormValue("reason"))
	s.afterDecision(w, r, req, err)
}

func (s *Server) afterDecision(w http.ResponseWriter, r *http.Request, req moderation.Request, err error) {
	switch {
	case errors.Is(err, moderation.ErrNotFound):
		s.notFound(w, r)
		return
	case errors.Is(err, moderation.ErrNotPending):
		s.redirectAdmin(w, r, tabVerifications, "Request was already decided")
		return
	case err != nil:
		s.serverError(w, "deciding request", err)
		return
	}
	s.redirectAdmin(w, r, tabVerifications, req.Name+" "+string(req.Status))
}

// handleRemoveFlagged takes a listing off the report queue.
func (s *Server) handleRemoveFlagged(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.notFound(w, r)
		return
	}
	err = s.moderation.RemoveFlagged(r.Context(), id)
	if errors.Is(err, moderation.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "removing report", err)
		return
	}
	slog.Info("report removed", "id", id)
	s.redirectAdmin(w, r, tabReports, "Listing removed")
}

// redirectAdmin returns to the dashboard tab, keeping the verification
// filter posted with the form.
func (s *Server) redirectAdmin(w http.ResponseWriter, r *http.Request, tab, flash string) {
	v := url.Values{"tab": {tab}, "flash": {flash}}
	if st := r.FormValue("status"); st != "" {
		v.Set("status", st)
	}
	if q := r.FormValue("q"); q != "" {
		v.Set("q", q)
	}
	http.Redirect(w, r, "/admin/dashboard?"+v.Encode(), http.StatusSeeOther)
}
