package web

import (
	"errors"
	"net/http"
	"strings"

	"servigest/internal/model"
	"servigest/internal/view"
)

// demo accounts offered on the login page
var demoAccounts = map[string]string{
	"client":   "joao@exemplo.com",
	"provider": "maria@exemplo.com",
}

type pageMeta struct {
	Page string         `json:"page"`
	User *model.User    `json:"user"`
	Nav  []view.NavLink `json:"nav"`
	From string         `json:"from,omitempty"`
	Demo []string       `json:"demo,omitempty"`
}

func (s *Server) meta(page string) pageMeta {
	m := pageMeta{Page: page, Nav: []view.NavLink{}}
	if u, ok := s.identity.Current(); ok {
		m.User = &u
		m.Nav = view.NavLinks(u.Role)
	}
	return m
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.meta("home"))
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity.Current(); ok {
		http.Redirect(w, r, view.PathDashboard, http.StatusSeeOther)
		return
	}
	m := s.meta("login")
	m.From = r.URL.Query().Get("from")
	m.Demo = []string{"client", "provider"}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.meta("register"))
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Demo     string `json:"demo"`
	From     string `json:"from"`
}

type authResult struct {
	User     model.User `json:"user"`
	Redirect string     `json:"redirect"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var f loginForm
	if err := decode(r, &f); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Required fields", "Please fill in all fields.")
		return
	}

	if f.Demo != "" {
		email, ok := demoAccounts[f.Demo]
		if !ok {
			s.fail(w, r, http.StatusBadRequest, "Login failed", "Unknown demo account.")
			return
		}
		f.Email, f.Password = email, "demo"
	}
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		s.fail(w, r, http.StatusBadRequest, "Required fields", "Please fill in all fields.")
		return
	}

	u, err := s.identity.Login(r.Context(), f.Email, f.Password)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.fail(w, r, http.StatusUnauthorized, "Login failed", "Incorrect email or password.")
			return
		}
		s.log.Error().Err(err).Msg("login")
		s.fail(w, r, http.StatusInternalServerError, "Login failed", "Could not sign in.")
		return
	}

	s.succeed(r, "Login successful", "You have been signed in as "+string(u.Role)+".")
	writeJSON(w, http.StatusOK, authResult{User: u, Redirect: afterLogin(f.From)})
}

// afterLogin returns the page to show once signed in. Only known local pages
// are honored.
func afterLogin(from string) string {
	path, query, _ := strings.Cut(from, "?")
	if p, ok := view.PageFor(path); ok && !p.Public {
		if query != "" {
			return p.Path + "?" + query
		}
		return p.Path
	}
	return view.PathDashboard
}

type registerForm struct {
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	ConfirmPassword string     `json:"confirmPassword"`
	Role            model.Role `json:"role"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var f registerForm
	if err := decode(r, &f); err != nil || f.Name == "" || f.Email == "" || f.Password == "" {
		s.fail(w, r, http.StatusBadRequest, "Required fields", "Please fill in all fields.")
		return
	}
	if f.Password != f.ConfirmPassword {
		s.fail(w, r, http.StatusBadRequest, "Passwords do not match", "The passwords you entered are not the same.")
		return
	}
	if f.Role == "" {
		f.Role = model.RoleClient
	}

	u, err := s.identity.Register(r.Context(), f.Name, f.Email, f.Password, f.Role)
	if err != nil {
		s.fail(w, r, httpStatus(err), "Registration failed", err.Error())
		return
	}

	s.succeed(r, "Registration complete", "Your account has been created.")
	writeJSON(w, http.StatusCreated, authResult{User: u, Redirect: view.PathDashboard})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.identity.Logout(r.Context()); err != nil {
		s.log.Warn().Err(err).Msg("session record not removed")
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": view.PathHome})
}

func (s *Server) notifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.queue.Drain())
}
