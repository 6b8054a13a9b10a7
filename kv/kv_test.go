package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := OpenSQLite(filepath.Join(dir, "data", "kv.db"))
	require.NoError(t, err)
	bolt, err := OpenBolt(filepath.Join(dir, "data", "kv.bolt"))
	require.NoError(t, err)

	backends := map[string]Backend{
		KindSQLite: sqlite,
		KindBolt:   bolt,
		KindMemory: NewMemory(),
	}
	t.Cleanup(func() {
		for _, b := range backends {
			b.Close()
		}
	})
	return backends
}

func TestBackendGetMissing(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(context.Background(), "absent")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBackendPutOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Put(ctx, "shine_config", []byte(`{"shopName":"A"}`)))
			require.NoError(t, b.Put(ctx, "shine_config", []byte(`{"shopName":"B"}`)))

			got, err := b.Get(ctx, "shine_config")
			require.NoError(t, err)
			assert.Equal(t, `{"shopName":"B"}`, string(got))
		})
	}
}

func TestBackendKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Put(ctx, "a", []byte("1")))
			require.NoError(t, b.Put(ctx, "b", []byte("2")))

			a, err := b.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "1", string(a))
			bv, err := b.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "2", string(bv))
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "shine_services", []byte(`[]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "shine_services")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestBoltSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.bolt")

	b, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, "shine_services", []byte(`[]`)))
	require.NoError(t, b.Close())

	b, err = OpenBolt(path)
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Get(ctx, "shine_services")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", buf))
	buf[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := Open("redis", "")
	assert.Error(t, err)
}
