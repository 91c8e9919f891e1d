package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/kwartayo/internal/kv"
)

// UserKey is the storage key holding the serialized signed-in user.
const UserKey = "kwartayo_user"

// DefaultDelay is the simulated latency of login and signup.
const DefaultDelay = 500 * time.Millisecond

// Options configure a Store.
type Options struct {
	// Delay is waited before login and signup complete. Zero disables it.
	Delay time.Duration
	// Directory holds the accounts that may log in. Nil means MockDirectory.
	Directory Directory
	Now       func() time.Time
}

// Store holds at most one signed-in user for a browser session. Every
// mutation is written through to the session's key/value storage so a
// later Open sees the same user.
type Store struct {
	storage kv.Store
	opts    Options
	// lock serializes writes with other stores of the same session.
	lock func() (unlock func())

	mu      sync.RWMutex
	current *User
}

// Open creates a Store over storage and rehydrates any persisted user.
// Persisted state that cannot be decoded is deleted and treated as no user.
func Open(ctx context.Context, storage kv.Store, opts Options) (*Store, error) {
	if opts.Directory == nil {
		opts.Directory = MockDirectory()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{storage: storage, opts: opts}

	u, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.current = u
	return s, nil
}

// load reads the persisted user, or nil when there is none.
func (s *Store) load(ctx context.Context) (*User, error) {
	raw, err := s.storage.Get(ctx, UserKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		slog.Debug("discarding unreadable user state", "error", err)
		if err := s.storage.Delete(ctx, UserKey); err != nil {
			return nil, fmt.Errorf("discarding user: %w", err)
		}
		return nil, nil
	}
	return &u, nil
}

// Current returns the signed-in user.
func (s *Store) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// Login signs in the directory account for email if its role matches.
// The password must be present but is not checked.
func (s *Store) Login(ctx context.Context, email, password string, role Role) (User, error) {
	if err := s.wait(ctx); err != nil {
		return User{}, err
	}
	if password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, ok := s.opts.Directory.Lookup(email)
	if !ok || u.Role != role {
		return User{}, ErrInvalidCredentials
	}
	if err := s.set(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Signup creates a new unverified account and signs it in.
func (s *Store) Signup(ctx context.Context, name, email, password string, role Role) (User, error) {
	if err := s.wait(ctx); err != nil {
		return User{}, err
	}

	id := uuid.NewString()
	for s.opts.Directory.Has(id) {
		id = uuid.NewString()
	}

	u := User{
		ID:        id,
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		Role:      role,
		AvatarURL: DefaultAvatar,
		Tier:      TierUnverified,
		CreatedAt: s.opts.Now().UTC(),
	}
	if err := s.set(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Logout forgets the signed-in user.
func (s *Store) Logout(ctx context.Context) error {
	unlock := s.lockSession()
	defer unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.storage.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("clearing user: %w", err)
	}
	return nil
}

// UpdateProfile merges p into the signed-in user. The merge starts from the
// persisted user, so fields saved meanwhile by another request of the same
// session are kept. It returns false when nobody is signed in.
func (s *Store) UpdateProfile(ctx context.Context, p Patch) (User, bool, error) {
	unlock := s.lockSession()
	defer unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load(ctx)
	if err != nil {
		return User{}, false, err
	}
	s.current = cur
	if cur == nil {
		return User{}, false, nil
	}

	u := *cur
	p.apply(&u)
	if err := s.save(ctx, &u); err != nil {
		return User{}, true, err
	}
	return u, true, nil
}

func (s *Store) set(ctx context.Context, u *User) error {
	unlock := s.lockSession()
	defer unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, u)
}

// save persists u and makes it current. The caller holds s.mu.
func (s *Store) save(ctx context.Context, u *User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.storage.Set(ctx, UserKey, string(b), 0); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	s.current = u
	return nil
}

func (s *Store) lockSession() func() {
	if s.lock == nil {
		return func() {}
	}
	return s.lock()
}

func (s *Store) wait(ctx context.Context) error {
	if s.opts.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.opts.Delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
