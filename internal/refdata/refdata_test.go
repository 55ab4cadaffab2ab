package refdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStoreLoad(t *testing.T) {
	profiles := writeTempCSV(t, "profiles.csv",
		"team,possessions_pg,points_pg,fouls_committed_pg\n"+
			"Kentucky Wildcats,71.2,82.4,16.1\n"+
			"Tennessee Volunteers,66.8,74.9,17.8\n")
	modifiers := writeTempCSV(t, "modifiers.csv",
		"team_a,team_b,modifier\n"+
			"Kentucky Wildcats,Tennessee Volunteers,0.4\n")

	store := NewStore(profiles, modifiers, time.Hour)
	require.NoError(t, store.Load())

	profile, ok := store.Profile("kentucky wildcats")
	require.True(t, ok)
	assert.Equal(t, 71.2, profile.PossessionsPG)
	assert.Equal(t, 82.4, profile.PointsPG)

	// Pair modifier is orientation independent
	assert.Equal(t, 0.4, store.PairModifier("Kentucky Wildcats", "Tennessee Volunteers"))
	assert.Equal(t, 0.4, store.PairModifier("Tennessee Volunteers", "Kentucky Wildcats"))
	assert.Equal(t, 0.0, store.PairModifier("Duke Blue Devils", "Kentucky Wildcats"))

	assert.False(t, store.Stale())
}

func TestStoreEmptyPaths(t *testing.T) {
	store := NewStore("", "", 0)
	require.NoError(t, store.Load())

	_, ok := store.Profile("Kentucky Wildcats")
	assert.False(t, ok)
	assert.Equal(t, 0.0, store.PairModifier("a", "b"))
}

func TestStoreMissingFile(t *testing.T) {
	store := NewStore("/nonexistent/profiles.csv", "", time.Hour)
	assert.Error(t, store.Load())
}

func TestStoreStaleBeforeLoad(t *testing.T) {
	store := NewStore("", "", time.Minute)
	assert.True(t, store.Stale())
}
