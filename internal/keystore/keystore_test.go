package keystore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory() },
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLite(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			got, err := s.Get(ctx, "token")
			require.NoError(t, err)
			require.Empty(t, got)

			require.NoError(t, s.Set(ctx, "token", "a"))
			require.NoError(t, s.Set(ctx, "token", "b"))
			got, err = s.Get(ctx, "token")
			require.NoError(t, err)
			require.Equal(t, "b", got)

			require.NoError(t, s.Delete(ctx, "token"))
			require.NoError(t, s.Delete(ctx, "token"))
			got, err = s.Get(ctx, "token")
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "token", "persisted"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "persisted", got)
}
