package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/evcraddock/kwartayo/internal/kv"
)

// Session is the per-request view of a browser session.
type Session struct {
	ID      string
	Storage kv.Store
	Auth    *Store
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// SessionFrom returns the session attached by LoadSession, or nil.
func SessionFrom(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKey{}).(*Session)
	return sess
}

// CurrentUser returns the signed-in user of the request context.
func CurrentUser(ctx context.Context) (User, bool) {
	sess := SessionFrom(ctx)
	if sess == nil || sess.Auth == nil {
		return User{}, false
	}
	return sess.Auth.Current()
}

// LoadSession is middleware that attaches the browser session and its auth
// store to every page request, starting a session when none exists.
// Static assets, probes and the JSON API are stateless and skip it.
func LoadSession(sessions *SessionStore, opts Options, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isStatelessPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		id, err := sessions.Ensure(w, r)
		if err != nil {
			slog.Error("session", "error", err)
			http.Error(w, "Session unavailable", http.StatusInternalServerError)
			return
		}

		storage := sessions.Storage(id)
		store, err := sessions.OpenAuth(r.Context(), id, opts)
		if err != nil {
			slog.Error("loading auth state", "error", err)
			http.Error(w, "Session unavailable", http.StatusInternalServerError)
			return
		}

		ctx := WithSession(r.Context(), &Session{ID: id, Storage: storage, Auth: store})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser redirects to the login page when nobody is signed in.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			http.Redirect(w, r, LoginPath(""), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole redirects to the login page for role unless the signed-in
// user has that role.
func RequireRole(role Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r.Context()); !ok || u.Role != role {
			http.Redirect(w, r, LoginPath(role), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginPath returns the login page URL, preselecting role when set.
func LoginPath(role Role) string {
	if role == "" {
		return "/auth/login"
	}
	return "/auth/login?" + url.Values{"role": {string(role)}}.Encode()
}

func isStatelessPath(path string) bool {
	if path == "/health" || path == "/metrics" {
		return true
	}
	return strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/api/")
}
