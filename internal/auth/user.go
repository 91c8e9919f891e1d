package auth

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidCredentials is returned when a login does not match the
// directory, including when the email is known but the role differs.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Role is what a user does on the marketplace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleSeeker Role = "seeker"
)

// ParseRole returns the role named by s, or false if s is not a role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleOwner, RoleSeeker:
		return r, true
	}
	return "", false
}

// Tier is a user's verification level. It is informational only.
type Tier string

const (
	TierUnverified Tier = "unverified"
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
)

// DefaultAvatar is assigned to new accounts.
const DefaultAvatar = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&h=400&fit=crop"

// User is the signed-in account as persisted in session storage.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatar"`
	Tier      Tier      `json:"verificationTier"`
	Bio       string    `json:"bio,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location"`
	Rating    float64   `json:"rating,omitempty"`
	Reviews   int       `json:"reviews,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Initials returns up to two leading letters of the user's name.
func (u User) Initials() string {
	var out []rune
	for _, f := range strings.Fields(u.Name) {
		r, _ := utf8.DecodeRuneInString(f)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// Patch is a partial profile update. Nil fields are left unchanged.
type Patch struct {
	Name      *string
	AvatarURL *string
	Bio       *string
	Phone     *string
	Location  *string
}

func (p Patch) apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
}

// Directory maps normalized emails to the accounts that may log in.
type Directory map[string]User

// Lookup returns the account for email.
func (d Directory) Lookup(email string) (User, bool) {
	u, ok := d[normalizeEmail(email)]
	return u, ok
}

// Has reports whether any account uses the given id.
func (d Directory) Has(id string) bool {
	for _, u := range d {
		if u.ID == id {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MockDirectory returns the demo accounts.
func MockDirectory() Directory {
	return Directory{
		"owner@test.com": {
			ID:        "1",
			Email:     "owner@test.com",
			Name:      "Maria Santos",
			Role:      RoleOwner,
			AvatarURL: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400&h=400&fit=crop",
			Tier:      TierPremium,
			Bio:       "Property manager with 5+ years experience",
			Phone:     "+63 9123456789",
			Location:  "Quezon City",
			Rating:    4.8,
			Reviews:   12,
			CreatedAt: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		"seeker@test.com": {
			ID:        "2",
			Email:     "seeker@test.com",
			Name:      "Juan Dela Cruz",
			Role:      RoleSeeker,
			AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop",
			Tier:      TierBasic,
			Bio:       "Looking for a cozy room near UP Diliman",
			Phone:     "+63 9087654321",
			Location:  "Quezon City",
			Rating:    4.5,
			Reviews:   3,
			CreatedAt: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}
