package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evcraddock/kwartayo/internal/auth"
)

type loginData struct {
	page
	Email string
	// Selected is the role the form submits.
	Selected auth.Role
	Error    string
}

type signupData struct {
	page
	Name     string
	Email    string
	Selected auth.Role
	Error    string
}

func selectedRole(s string) auth.Role {
	if role, ok := auth.ParseRole(s); ok {
		return role
	}
	return auth.RoleSeeker
}

// handleLoginPage renders the login form, preselecting ?role.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", loginData{
		page:     s.page(r, "Sign In", "login"),
		Selected: selectedRole(r.URL.Query().Get("role")),
	})
}

// handleLoginSubmit checks the credentials against the directory.
func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	if sess == nil {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	role := selectedRole(r.FormValue("role"))
	data := loginData{page: s.page(r, "Sign In", "login"), Email: email, Selected: role}

	if email == "" {
		data.Error = "Email is required"
		s.render(w, "login.html", data)
		return
	}

	_, err := sess.Auth.Login(r.Context(), email, r.FormValue("password"), role)
	s.metrics.ObserveLogin("user", err == nil)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		data.Error = "Invalid credentials"
		s.render(w, "login.html", data)
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		s.serverError(w, "logging in", err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleSignupPage renders the signup form.
func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "signup.html", signupData{
		page:     s.page(r, "Create Account", "signup"),
		Selected: selectedRole(r.URL.Query().Get("role")),
	})
}

// handleSignupSubmit creates an unverified account for the session.
func (s *Server) handleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	if sess == nil {
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := signupData{
		page:     s.page(r, "Create Account", "signup"),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Selected: selectedRole(r.FormValue("role")),
	}
	password := r.FormValue("password")

	switch {
	case data.Name == "" || data.Email == "" || password == "":
		data.Error = "Name, email and password are required"
	case password != r.FormValue("confirm_password"):
		data.Error = "Passwords do not match"
	case r.FormValue("terms") == "":
		data.Error = "You must agree to the terms and conditions"
	}
	if data.Error != "" {
		s.render(w, "signup.html", data)
		return
	}

	if _, err := sess.Auth.Signup(r.Context(), data.Name, data.Email, password, data.Selected); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.serverError(w, "signing up", err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout clears the signed-in user and returns home.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := auth.SessionFrom(r.Context()); sess != nil {
		if err := sess.Auth.Logout(r.Context()); err != nil {
			slog.Error("logging out", "error", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
