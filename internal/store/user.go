package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"servigest/internal/kv"
	"servigest/internal/model"
)

// Session is a snapshot of who is logged in. Loading is true until Init has
// run and while a login, registration or logout is in flight.
type Session struct {
	User    *model.User
	Loading bool
}

// Directory resolves users by id and role.
type Directory interface {
	UserByID(id string) (model.User, error)
	UsersByRole(role model.Role) []model.User
}

// SessionSource reports the current user.
type SessionSource interface {
	Current() (model.User, bool)
}

// Identity owns the user catalog and the current session.
type Identity struct {
	mu      sync.RWMutex
	users   []model.User
	lastID  int
	current *model.User
	loading bool

	kv  kv.Storage
	log zerolog.Logger
}

func NewIdentity(storage kv.Storage, log zerolog.Logger, seed []model.User) *Identity {
	id := &Identity{
		users:   append([]model.User(nil), seed...),
		loading: true,
		kv:      storage,
		log:     log.With().Str("component", "identity").Logger(),
	}
	for _, u := range seed {
		if n, err := strconv.Atoi(u.ID); err == nil && n > id.lastID {
			id.lastID = n
		}
	}
	return id
}

// Init hydrates the session from storage. A record that cannot be decoded is
// dropped so the next start is clean.
func (s *Identity) Init(ctx context.Context) error {
	defer s.setLoading(false)

	u, err := loadSession(ctx, s.kv)
	if err != nil {
		if errors.Is(err, errCorruptSession) {
			s.log.Warn().Msg("dropping unreadable session record")
			return clearSession(ctx, s.kv)
		}
		return err
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	if u != nil {
		s.log.Info().Str("user_id", u.ID).Msg("session restored")
	}
	return nil
}

func (s *Identity) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, fmt.Errorf("email and password required: %w", model.ErrValidation)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	u, ok := s.byEmail(email)
	if !ok {
		return model.User{}, fmt.Errorf("user %q: %w", email, model.ErrNotFound)
	}
	// password is accepted as-is; there are no stored credentials
	if err := saveSession(ctx, s.kv, u); err != nil {
		return model.User{}, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	s.log.Info().Str("user_id", u.ID).Msg("login")
	return u, nil
}

func (s *Identity) Register(ctx context.Context, name, email, password string, role model.Role) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return model.User{}, fmt.Errorf("name, email and password required: %w", model.ErrValidation)
	}
	if !role.Valid() {
		return model.User{}, fmt.Errorf("role %q: %w", role, model.ErrValidation)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, fmt.Errorf("email %q already registered: %w", email, model.ErrConflict)
		}
	}

	u := model.User{
		ID:    strconv.Itoa(s.lastID + 1),
		Name:  name,
		Email: email,
		Role:  role,
	}
	if err := saveSession(ctx, s.kv, u); err != nil {
		return model.User{}, fmt.Errorf("persist session: %w", err)
	}

	s.lastID++
	s.users = append(s.users, u)
	s.current = &u

	s.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("registered")
	return u, nil
}

// Logout always clears the in-memory session; the error reports a storage failure.
func (s *Identity) Logout(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		s.log.Info().Str("user_id", prev.ID).Msg("logout")
	}
	return clearSession(ctx, s.kv)
}

func (s *Identity) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Session{Loading: s.loading}
	if s.current != nil {
		u := *s.current
		out.User = &u
	}
	return out
}

func (s *Identity) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

func (s *Identity) UserByID(id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, model.ErrNotFound)
}

func (s *Identity) UsersByRole(role model.Role) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// Users returns the whole catalog in registration order.
func (s *Identity) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.User(nil), s.users...)
}

func (s *Identity) byEmail(email string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Identity) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
