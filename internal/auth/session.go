package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/evcraddock/kwartayo/internal/kv"
)

const (
	// DefaultSessionTTL is how long a browser session lives after it is
	// created. Requests do not extend it.
	DefaultSessionTTL = 30 * 24 * time.Hour
	cookieName        = "kw_session"
	sessionPrefix     = "session:"
)

// ErrNoSession is returned by Validate when the request carries no live
// session.
var ErrNoSession = errors.New("no session")

// SessionStore issues anonymous browser sessions. Each session owns a
// namespace in the key/value store that stands in for the browser's local
// storage.
type SessionStore struct {
	store kv.Store
	ttl   time.Duration
	now   func() time.Time
	locks keyedMutex
}

// NewSessionStore creates a session store. A zero ttl uses
// DefaultSessionTTL.
func NewSessionStore(store kv.Store, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{store: store, ttl: ttl, now: time.Now}
}

// Create starts a new session and sets its cookie.
func (s *SessionStore) Create(ctx context.Context, w http.ResponseWriter) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("generating session ID: %w", err)
	}

	if err := s.store.Set(ctx, sessionPrefix+id, s.now().UTC().Format(time.RFC3339), s.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		Expires:  s.now().Add(s.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Validate returns the session id carried by r if it is still live. It
// does not refresh the session's expiry.
func (s *SessionStore) Validate(r *http.Request) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}

	_, err = s.store.Get(r.Context(), sessionPrefix+cookie.Value)
	if errors.Is(err, kv.ErrNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("querying session: %w", err)
	}
	return cookie.Value, nil
}

// Ensure returns the live session of r, creating one if needed.
func (s *SessionStore) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	id, err := s.Validate(r)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNoSession) {
		return "", err
	}
	return s.Create(r.Context(), w)
}

// Destroy ends the session of r and clears the cookie.
func (s *SessionStore) Destroy(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil // no session to destroy
	}

	if err := s.store.Delete(r.Context(), sessionPrefix+cookie.Value); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Storage returns the key/value namespace of session id. Writes expire
// with the session unless they set their own ttl.
func (s *SessionStore) Storage(id string) kv.Store {
	return kv.Scoped{Store: s.store, Prefix: sessionPrefix + id + ":", TTL: s.ttl}
}

// OpenAuth opens the auth store of session id. Writes through stores of
// the same session are serialized.
func (s *SessionStore) OpenAuth(ctx context.Context, id string, opts Options) (*Store, error) {
	store, err := Open(ctx, s.Storage(id), opts)
	if err != nil {
		return nil, err
	}
	store.lock = func() func() { return s.locks.lock(id) }
	return store, nil
}

// Cleanup removes expired sessions and session data when the backing store
// needs explicit sweeping. Stores with native expiry report zero.
func (s *SessionStore) Cleanup(ctx context.Context) (int64, error) {
	sw, ok := s.store.(kv.Sweeper)
	if !ok {
		return 0, nil
	}
	n, err := sw.Sweep(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleaning up sessions: %w", err)
	}
	return n, nil
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// keyedMutex hands out one mutex per key, dropping it once nobody holds or
// waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		if m.refs--; m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
