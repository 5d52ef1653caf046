package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the same behaviour checks against any backend.
func exercise(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "servigest_user")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "servigest_user", []byte(`{"id":"1"}`)))
	got, err := s.Get(ctx, "servigest_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	// overwrite
	require.NoError(t, s.Set(ctx, "servigest_user", []byte(`{"id":"2"}`)))
	got, err = s.Get(ctx, "servigest_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2"}`, string(got))

	require.NoError(t, s.Delete(ctx, "servigest_user"))
	_, err = s.Get(ctx, "servigest_user")
	require.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	require.NoError(t, s.Delete(ctx, "servigest_user"))
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", v))
	v[0] = 'x'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	f, err := NewFile(dir)
	require.NoError(t, err)
	exercise(t, f)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files should not be left behind")
}

func TestFileRejectsPathKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		require.Error(t, f.Set(context.Background(), key, []byte("x")), key)
	}
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := NewRedis(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	exercise(t, r)
}

func TestRedisPingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), addr, "")
	require.Error(t, err)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exercise(t, s)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	p, err := NewPostgres(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = p.Delete(context.Background(), "servigest_user")
		p.Close()
	})

	exercise(t, p)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(context.Background(), Options{Driver: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	_, err = Open(context.Background(), Options{Driver: "etcd"})
	require.Error(t, err)
}
