package linker

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/voltlang/voltlink/internal/cache"
)

func openTestStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.OpenStore(filepath.Join(t.TempDir(), "cache.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}
