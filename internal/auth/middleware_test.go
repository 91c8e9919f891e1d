package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/kwartayo/internal/kv"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithUser(t *testing.T, u *User) *http.Request {
	t.Helper()
	storage := kv.NewMemory()
	store, err := Open(context.Background(), storage, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if u != nil {
		if err := store.set(context.Background(), u); err != nil {
			t.Fatalf("set user: %v", err)
		}
	}
	r := httptest.NewRequest("GET", "/dashboard", nil)
	ctx := WithSession(r.Context(), &Session{ID: "test", Storage: storage, Auth: store})
	return r.WithContext(ctx)
}

func TestRequireUserRedirectsAnonymous(t *testing.T) {
	w := httptest.NewRecorder()
	RequireUser(okHandler()).ServeHTTP(w, requestWithUser(t, nil))

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if w.Header().Get("Location") != "/auth/login" {
		t.Errorf("location = %q, want /auth/login", w.Header().Get("Location"))
	}
}

func TestRequireUserWithoutSession(t *testing.T) {
	w := httptest.NewRecorder()
	RequireUser(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
}

func TestRequireUserAllowsSignedIn(t *testing.T) {
	u := MockDirectory()["seeker@test.com"]
	w := httptest.NewRecorder()
	RequireUser(okHandler()).ServeHTTP(w, requestWithUser(t, &u))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireRole(t *testing.T) {
	owner := MockDirectory()["owner@test.com"]
	seeker := MockDirectory()["seeker@test.com"]

	tests := []struct {
		name     string
		user     *User
		role     Role
		wantCode int
		wantLoc  string
	}{
		{"anonymous", nil, RoleOwner, http.StatusSeeOther, "/auth/login?role=owner"},
		{"wrong role", &seeker, RoleOwner, http.StatusSeeOther, "/auth/login?role=owner"},
		{"right role", &owner, RoleOwner, http.StatusOK, ""},
		{"seeker page", &seeker, RoleSeeker, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RequireRole(tt.role, okHandler()).ServeHTTP(w, requestWithUser(t, tt.user))

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := w.Header().Get("Location"); got != tt.wantLoc {
				t.Errorf("location = %q, want %q", got, tt.wantLoc)
			}
		})
	}
}

func TestLoadSessionAttachesStore(t *testing.T) {
	sessions := NewSessionStore(kv.NewMemory(), 0)

	var seen *Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFrom(r.Context())
	})

	w := httptest.NewRecorder()
	LoadSession(sessions, Options{}, inner).ServeHTTP(w, httptest.NewRequest("GET", "/search", nil))

	if seen == nil {
		t.Fatal("expected session in context")
	}
	if seen.Auth == nil || seen.Storage == nil {
		t.Fatal("session should carry auth store and storage")
	}
	if findCookie(w.Result().Cookies(), cookieName) == nil {
		t.Error("expected a session cookie for a new visitor")
	}
}

func TestLoadSessionRehydratesUser(t *testing.T) {
	sessions := NewSessionStore(kv.NewMemory(), 0)
	handler := LoadSession(sessions, Options{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if _, ok := sess.Auth.Current(); !ok {
			if _, err := sess.Auth.Login(r.Context(), "owner@test.com", "password123", RoleOwner); err != nil {
				t.Errorf("login: %v", err)
			}
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	cookie := findCookie(w.Result().Cookies(), cookieName)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, r)

	if w2.Code != http.StatusAccepted {
		t.Errorf("status = %d, want user rehydrated on second request", w2.Code)
	}
}

func TestLoadSessionSkipsStatelessPaths(t *testing.T) {
	sessions := NewSessionStore(kv.NewMemory(), 0)

	for _, path := range []string{"/static/style.css", "/health", "/metrics", "/api/properties"} {
		w := httptest.NewRecorder()
		LoadSession(sessions, Options{}, okHandler()).ServeHTTP(w, httptest.NewRequest("GET", path, nil))

		if len(w.Result().Cookies()) != 0 {
			t.Errorf("%s: expected no session cookie", path)
		}
	}
}
