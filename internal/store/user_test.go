package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servigest/internal/kv"
	"servigest/internal/model"
)

func newIdentity(t *testing.T) (*Identity, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	id := NewIdentity(mem, zerolog.Nop(), SeedUsers())
	require.NoError(t, id.Init(context.Background()))
	return id, mem
}

func storedUser(t *testing.T, mem kv.Storage) (model.User, bool) {
	t.Helper()
	b, err := mem.Get(context.Background(), SessionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return model.User{}, false
	}
	require.NoError(t, err)
	var u model.User
	require.NoError(t, json.Unmarshal(b, &u))
	return u, true
}

func TestLoginSetsAndPersistsSession(t *testing.T) {
	id, mem := newIdentity(t)

	u, err := id.Login(context.Background(), "maria@exemplo.com", "anything")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
	assert.Equal(t, model.RoleProvider, u.Role)

	sess := id.Session()
	require.NotNil(t, sess.User)
	assert.Equal(t, u, *sess.User)
	assert.False(t, sess.Loading)

	got, ok := storedUser(t, mem)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestLoginUnknownEmail(t *testing.T) {
	id, mem := newIdentity(t)
	_, err := id.Login(context.Background(), "joao@exemplo.com", "pw")
	require.NoError(t, err)
	before := id.Session()

	_, err = id.Login(context.Background(), "nobody@nowhere.com", "pw")
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, before, id.Session())

	got, ok := storedUser(t, mem)
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)
}

func TestLoginValidation(t *testing.T) {
	id, _ := newIdentity(t)

	_, err := id.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, model.ErrValidation)
	_, err = id.Login(context.Background(), "maria@exemplo.com", "")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestRegister(t *testing.T) {
	id, mem := newIdentity(t)

	u, err := id.Register(context.Background(), "Carlos Mendes", "carlos@exemplo.com", "secret", model.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, "4", u.ID)
	assert.Len(t, id.Users(), 4)

	cur, ok := id.Current()
	require.True(t, ok)
	assert.Equal(t, u, cur)

	got, ok := storedUser(t, mem)
	require.True(t, ok)
	assert.Equal(t, u, got)

	byID, err := id.UserByID("4")
	require.NoError(t, err)
	assert.Equal(t, u, byID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mem := kv.NewMemory()
	id := NewIdentity(mem, zerolog.Nop(), []model.User{{ID: "1", Name: "A", Email: "a@x.com", Role: model.RoleClient}})
	require.NoError(t, id.Init(context.Background()))

	_, err := id.Register(context.Background(), "B", "a@x.com", "pw", model.RoleClient)
	require.ErrorIs(t, err, model.ErrConflict)
	assert.Len(t, id.Users(), 1)

	_, ok := id.Current()
	assert.False(t, ok)
	_, ok = storedUser(t, mem)
	assert.False(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	id, _ := newIdentity(t)

	tests := []struct {
		name                   string
		uname, email, password string
		role                   model.Role
	}{
		{"empty name", "", "x@y.com", "pw", model.RoleClient},
		{"empty email", "X", "", "pw", model.RoleClient},
		{"empty password", "X", "x@y.com", "", model.RoleClient},
		{"bad role", "X", "x@y.com", "pw", model.Role("Admin")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := id.Register(context.Background(), tt.uname, tt.email, tt.password, tt.role)
			require.ErrorIs(t, err, model.ErrValidation)
		})
	}
	assert.Len(t, id.Users(), 3)
}

func TestRegisterIDsAreMonotonic(t *testing.T) {
	id, _ := newIdentity(t)

	a, err := id.Register(context.Background(), "A", "a@x.com", "pw", model.RoleClient)
	require.NoError(t, err)
	b, err := id.Register(context.Background(), "B", "b@x.com", "pw", model.RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, "4", a.ID)
	assert.Equal(t, "5", b.ID)
}

func TestLogout(t *testing.T) {
	id, mem := newIdentity(t)
	_, err := id.Login(context.Background(), "maria@exemplo.com", "pw")
	require.NoError(t, err)

	require.NoError(t, id.Logout(context.Background()))

	assert.Nil(t, id.Session().User)
	_, ok := storedUser(t, mem)
	assert.False(t, ok)

	// logging out again is harmless
	require.NoError(t, id.Logout(context.Background()))
}

func TestInitRestoresSession(t *testing.T) {
	mem := kv.NewMemory()
	first := NewIdentity(mem, zerolog.Nop(), SeedUsers())
	require.NoError(t, first.Init(context.Background()))
	u, err := first.Login(context.Background(), "ana@exemplo.com", "pw")
	require.NoError(t, err)

	second := NewIdentity(mem, zerolog.Nop(), SeedUsers())
	assert.True(t, second.Session().Loading)
	require.NoError(t, second.Init(context.Background()))

	sess := second.Session()
	assert.False(t, sess.Loading)
	require.NotNil(t, sess.User)
	assert.Equal(t, u, *sess.User)
}

func TestInitDropsCorruptRecord(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), SessionKey, []byte("{not json")))

	id := NewIdentity(mem, zerolog.Nop(), SeedUsers())
	require.NoError(t, id.Init(context.Background()))

	assert.Nil(t, id.Session().User)
	_, ok := storedUser(t, mem)
	assert.False(t, ok)
}

func TestUsersByRole(t *testing.T) {
	id, _ := newIdentity(t)

	providers := id.UsersByRole(model.RoleProvider)
	require.Len(t, providers, 2)
	assert.Equal(t, "1", providers[0].ID)
	assert.Equal(t, "3", providers[1].ID)

	_, err := id.UserByID("99")
	require.ErrorIs(t, err, model.ErrNotFound)
}
