// Package auth provides the per-session user store, anonymous browser
// sessions, route guards and the admin console login.
package auth

import "time"

// Default admin console credentials.
const (
	DefaultAdminEmail    = "admin@kwartayo.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminTokenTTL = 12 * time.Hour
)

// AdminConfig holds the admin console settings.
type AdminConfig struct {
	Email    string
	Password string
	// Secret signs admin tokens. When empty a random secret is generated,
	// which invalidates admin cookies on restart.
	Secret   string
	TokenTTL time.Duration
}

func (c AdminConfig) withDefaults() AdminConfig {
	if c.Email == "" {
		c.Email = DefaultAdminEmail
	}
	if c.Password == "" {
		c.Password = DefaultAdminPassword
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = DefaultAdminTokenTTL
	}
	return c
}
