package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	adminCookieName = "kw_admin"
	adminRole       = "admin"
	adminIssuer     = "kwartayo"
)

// ErrNotAdmin is returned when a request carries no valid admin token.
var ErrNotAdmin = errors.New("not an admin")

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuth guards the admin console with a signed token cookie.
type AdminAuth struct {
	cfg    AdminConfig
	secret []byte
	now    func() time.Time
}

// NewAdminAuth creates the admin authenticator.
func NewAdminAuth(cfg AdminConfig) (*AdminAuth, error) {
	cfg = cfg.withDefaults()
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generating admin secret: %w", err)
		}
	}
	return &AdminAuth{cfg: cfg, secret: secret, now: time.Now}, nil
}

// Login checks the admin credentials and returns a signed token.
func (a *AdminAuth) Login(email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(normalizeEmail(a.cfg.Email))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.Password)) == 1
	if !emailOK || !passOK {
		return "", ErrInvalidCredentials
	}

	now := a.now()
	claims := adminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   normalizeEmail(a.cfg.Email),
			Issuer:    adminIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing admin token: %w", err)
	}
	return token, nil
}

// Verify parses an admin token and returns the admin's email.
func (a *AdminAuth) Verify(token string) (string, error) {
	var claims adminClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminIssuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAdmin, err)
	}
	if claims.Role != adminRole {
		return "", ErrNotAdmin
	}
	return claims.Subject, nil
}

// SetCookie stores token in the admin cookie.
func (a *AdminAuth) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/admin",
		Expires:  a.now().Add(a.cfg.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie removes the admin cookie.
func (a *AdminAuth) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Validate returns the admin email of r's admin cookie.
func (a *AdminAuth) Validate(r *http.Request) (string, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", ErrNotAdmin
	}
	return a.Verify(cookie.Value)
}

// RequireAdmin redirects to the admin login unless r carries a valid admin
// token.
func RequireAdmin(admin *AdminAuth, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := admin.Validate(r); err != nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
