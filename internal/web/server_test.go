package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/kv"
	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/message"
	"github.com/evcraddock/kwartayo/internal/metrics"
	"github.com/evcraddock/kwartayo/internal/moderation"
)

const testReplyDelay = 20 * time.Millisecond

func testServer(t *testing.T) *Server {
	t.Helper()

	admin, err := auth.NewAdminAuth(auth.AdminConfig{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}

	msgs := message.NewService(message.NewMemoryRepository(), testReplyDelay)
	t.Cleanup(msgs.Close)

	srv, err := NewServer(Options{
		Listings:   listing.NewFixtureRepository(),
		Messages:   msgs,
		Moderation: moderation.NewService(moderation.NewMemoryRepository()),
		Sessions:   auth.NewSessionStore(kv.NewMemory(), 0),
		Admin:      admin,
		Metrics:    metrics.New(),
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

// browser replays cookies between requests like a real client.
type browser struct {
	t       *testing.T
	srv     http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, srv http.Handler) *browser {
	return &browser{t: t, srv: srv, cookies: map[string]*http.Cookie{}}
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do("GET", target, nil)
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do("POST", target, form)
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	b.srv.ServeHTTP(w, r)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) login(email string, role auth.Role) {
	b.t.Helper()
	w := b.post("/auth/login", url.Values{"email": {email}, "password": {"password123"}, "role": {string(role)}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		b.t.Fatalf("login %s: status = %d, location = %q", email, w.Code, w.Header().Get("Location"))
	}
}

func asSeeker(t *testing.T) *browser {
	b := newBrowser(t, testServer(t))
	b.login("seeker@test.com", auth.RoleSeeker)
	return b
}

func asOwner(t *testing.T) *browser {
	b := newBrowser(t, testServer(t))
	b.login("owner@test.com", auth.RoleOwner)
	return b
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", w.Code, want, w.Body.String())
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
}

func assertContains(t *testing.T, w *httptest.ResponseRecorder, substrs ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrs {
		if !strings.Contains(body, s) {
			t.Errorf("body does not contain %q", s)
		}
	}
}

func assertNotContains(t *testing.T, w *httptest.ResponseRecorder, substrs ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrs {
		if strings.Contains(body, s) {
			t.Errorf("body unexpectedly contains %q", s)
		}
	}
}

func TestNewServerRequiresDependencies(t *testing.T) {
	if _, err := NewServer(Options{}); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	assertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}
	assertContains(t, w, `"status":"ok"`)
	if len(w.Result().Cookies()) != 0 {
		t.Error("health check should not start a session")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.get("/search")

	w := b.get("/metrics")
	assertStatus(t, w, http.StatusOK)
	assertContains(t, w, `kwartayo_http_requests_total{method="GET",route="/search",status="200"} 1`)
}

func TestStaticAssets(t *testing.T) {
	b := newBrowser(t, testServer(t))

	w := b.get("/static/style.css")
	assertStatus(t, w, http.StatusOK)
	assertContains(t, w, ".property-card")
}

func TestUnknownPageNotFound(t *testing.T) {
	b := newBrowser(t, testServer(t))

	assertStatus(t, b.get("/nowhere"), http.StatusNotFound)
}

func TestSessionCookieIssuedOnce(t *testing.T) {
	b := newBrowser(t, testServer(t))

	first := b.get("/")
	if len(first.Result().Cookies()) != 1 {
		t.Fatalf("expected a session cookie on first visit")
	}
	second := b.get("/")
	if len(second.Result().Cookies()) != 0 {
		t.Errorf("expected the session to be reused")
	}
}

func TestFormatWithCommas(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		999:     "999",
		8500:    "8,500",
		1243000: "1,243,000",
		-12000:  "-12,000",
	}
	for n, want := range tests {
		if got := formatWithCommas(n); got != want {
			t.Errorf("formatWithCommas(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLocalRedirect(t *testing.T) {
	tests := map[string]string{
		"/search?q=x":        "/search?q=x",
		"":                   "/fallback",
		"https://evil.test/": "/fallback",
		"//evil.test":        "/fallback",
		`/\evil.test`:        "/fallback",
	}
	for in, want := range tests {
		if got := localRedirect(in, "/fallback"); got != want {
			t.Errorf("localRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := testServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
