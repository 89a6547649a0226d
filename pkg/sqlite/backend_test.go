package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/swatch/pkg/sqlite"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

func TestNewBackend_Lifecycle(t *testing.T) {
	catalog := sqlite.NewBackend()
	require.NoError(t, catalog.Attach(types.Config{Backend: types.BackendSQLite, DataDir: types.MemoryDataDir}))
	defer catalog.Detach()

	store, err := catalog.Tokens()
	require.NoError(t, err)
	n, err := store.Seed(sqlite.DefaultTokens())
	require.NoError(t, err)
	assert.Equal(t, len(sqlite.DefaultTokens()), n)

	snaps, err := catalog.Snapshots()
	require.NoError(t, err)
	snap, err := snaps.Create("1.0.0", "", "")
	require.NoError(t, err)

	r, err := catalog.Diff(snap.Version, types.CurrentRef)
	require.NoError(t, err)
	assert.False(t, r.HasChanges())
	assert.Equal(t, n, r.Summary.Unchanged)
}
