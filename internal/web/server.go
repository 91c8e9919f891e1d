// Package web provides the HTTP server, handlers and templates of the
// kwartayo marketplace.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/logging"
	"github.com/evcraddock/kwartayo/internal/message"
	"github.com/evcraddock/kwartayo/internal/metrics"
	"github.com/evcraddock/kwartayo/internal/moderation"
)

const shutdownTimeout = 10 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Options are the dependencies of a Server.
type Options struct {
	Listings   listing.Repository
	Messages   *message.Service
	Moderation *moderation.Service
	Sessions   *auth.SessionStore
	// Auth configures the per-session user store.
	Auth    auth.Options
	Admin   *auth.AdminAuth
	Metrics *metrics.Metrics
}

// Server is the web UI HTTP server.
type Server struct {
	listings   listing.Repository
	messages   *message.Service
	moderation *moderation.Service
	sessions   *auth.SessionStore
	admin      *auth.AdminAuth
	metrics    *metrics.Metrics

	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a web server over the given dependencies.
func NewServer(opts Options) (*Server, error) {
	if opts.Listings == nil || opts.Messages == nil || opts.Moderation == nil {
		return nil, errors.New("web: listings, messages and moderation are required")
	}
	if opts.Sessions == nil || opts.Admin == nil {
		return nil, errors.New("web: sessions and admin auth are required")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	funcMap := template.FuncMap{
		"peso":     tmplPeso,
		"number":   tmplNumber,
		"date":     tmplDate,
		"ago":      tmplAgo,
		"rating":   tmplRating,
		"contains": tmplContains,
		"hasInt":   tmplHasInt,
		"card":     tmplCard,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		listings:   opts.Listings,
		messages:   opts.Messages,
		moderation: opts.Moderation,
		sessions:   opts.Sessions,
		admin:      opts.Admin,
		metrics:    opts.Metrics,
		templates:  tmpl,
		mux:        http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.routes(http.FileServer(http.FS(staticContent)))

	s.handler = logging.RequestLogger(
		s.metrics.Middleware(
			auth.LoadSession(s.sessions, opts.Auth, s.mux),
		),
	)
	return s, nil
}

func (s *Server) routes(static http.Handler) {
	owner := func(h http.HandlerFunc) http.Handler { return auth.RequireRole(auth.RoleOwner, h) }
	seeker := func(h http.HandlerFunc) http.Handler { return auth.RequireRole(auth.RoleSeeker, h) }
	user := func(h http.HandlerFunc) http.Handler { return auth.RequireUser(h) }
	admin := func(h http.HandlerFunc) http.Handler { return auth.RequireAdmin(s.admin, h) }

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", static))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", s.metrics.Handler())

	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.HandleFunc("GET /roommates", s.handleRoommates)
	s.mux.HandleFunc("GET /properties/{id}", s.handlePropertyDetail)

	s.mux.HandleFunc("GET /auth/login", s.handleLoginPage)
	s.mux.HandleFunc("POST /auth/login", s.handleLoginSubmit)
	s.mux.HandleFunc("GET /auth/signup", s.handleSignupPage)
	s.mux.HandleFunc("POST /auth/signup", s.handleSignupSubmit)
	s.mux.HandleFunc("POST /auth/logout", s.handleLogout)

	s.mux.Handle("GET /dashboard", user(s.handleDashboard))
	s.mux.Handle("GET /profile", user(s.handleProfile))
	s.mux.Handle("POST /profile", user(s.handleProfileSubmit))

	s.mux.Handle("GET /favorites", seeker(s.handleFavorites))
	s.mux.Handle("POST /favorites/{id}", seeker(s.handleFavoriteToggle))
	s.mux.Handle("GET /recommendations", seeker(s.handleRecommendations))
	s.mux.Handle("GET /preferences", seeker(s.handlePreferences))
	s.mux.Handle("POST /preferences", seeker(s.handlePreferencesSubmit))

	s.mux.Handle("GET /listings", owner(s.handleListings))
	s.mux.Handle("GET /listings/create", owner(s.handleWizard))
	s.mux.Handle("POST /listings/create", owner(s.handleWizardSubmit))
	s.mux.Handle("GET /listings/{id}", owner(s.handleListingDetail))

	s.mux.Handle("GET /messages", user(s.handleMessages))
	s.mux.Handle("GET /messages/{id}", user(s.handleConversation))
	s.mux.Handle("POST /messages/{id}", user(s.handleSendMessage))
	s.mux.Handle("POST /messages/{id}/archive", user(s.handleArchive))

	s.mux.HandleFunc("GET /admin/login", s.handleAdminLoginPage)
	s.mux.HandleFunc("POST /admin/login", s.handleAdminLoginSubmit)
	s.mux.HandleFunc("POST /admin/logout", s.handleAdminLogout)
	s.mux.Handle("GET /admin/dashboard", admin(s.handleAdminDashboard))
	s.mux.Handle("POST /admin/requests/{id}/approve", admin(s.handleApprove))
	s.mux.Handle("POST /admin/requests/{id}/reject", admin(s.handleReject))
	s.mux.Handle("POST /admin/flagged/{id}/remove", admin(s.handleRemoveFlagged))

	s.mux.HandleFunc("GET /api/properties", s.apiListProperties)
	s.mux.HandleFunc("GET /api/properties/{id}", s.apiGetProperty)
	s.mux.HandleFunc("GET /api/roommates", s.apiListRoommates)
	s.mux.HandleFunc("GET /api/recommendations", s.apiRecommendations)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web UI", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down web UI")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// Template helper functions

func tmplPeso(n int) string {
	return "₱" + formatWithCommas(int64(n))
}

func tmplNumber(n int) string {
	return formatWithCommas(int64(n))
}

func tmplDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// tmplAgo renders a conversation timestamp the way the inbox lists them.
func tmplAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "Yesterday"
	}
	return fmt.Sprintf("%d days ago", int(d.Hours()/24))
}

func tmplRating(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func tmplContains(list []string, s string) bool {
	return slices.Contains(list, s)
}

func tmplHasInt(list []int, n int) bool {
	return slices.Contains(list, n)
}

// cardView is the input of the property card partial.
type cardView struct {
	listing.Property
	Favorited bool
	CanSave   bool
	Next      string
}

func tmplCard(p listing.Property, favs map[int64]bool, role auth.Role, next string) cardView {
	return cardView{Property: p, Favorited: favs[p.ID], CanSave: role == auth.RoleSeeker, Next: next}
}

func formatWithCommas(n int64) string {
	if n < 0 {
		return "-" + formatWithCommas(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
