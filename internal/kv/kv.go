// Package kv provides the key/value storage used for per-session state:
// the signed-in user record, favorites, preferences and listing drafts.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key is absent or expired.
var ErrNotFound = errors.New("key not found")

// Store is a string key/value store with optional per-key expiry.
// A zero ttl means the key never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Sweeper is implemented by stores that need expired keys removed
// explicitly. It returns the number of keys removed.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Scoped prefixes every key with Prefix and applies TTL to writes that
// don't set their own.
type Scoped struct {
	Store  Store
	Prefix string
	TTL    time.Duration
}

// Get implements Store.
func (s Scoped) Get(ctx context.Context, key string) (string, error) {
	return s.Store.Get(ctx, s.Prefix+key)
}

// Set implements Store.
func (s Scoped) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.TTL
	}
	return s.Store.Set(ctx, s.Prefix+key, value, ttl)
}

// Delete implements Store.
func (s Scoped) Delete(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, s.Prefix+key)
}
