package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dareloop/dareloop/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := New(Config{
		Path:        ":memory:",
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestGetOrCreateUserIDIdempotent(t *testing.T) {
	database := setupTestDB(t)

	first, err := database.GetOrCreateUserID()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := database.GetOrCreateUserID()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunPointerExclusivity(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, database.SetCurrentRun("run-a"))
	current, last, err := database.RunPointer()
	require.NoError(t, err)
	assert.Equal(t, "run-a", current)
	assert.Empty(t, last)

	require.NoError(t, database.FinalizeRun("run-a"))
	current, last, err = database.RunPointer()
	require.NoError(t, err)
	assert.Empty(t, current)
	assert.Equal(t, "run-a", last)

	// Starting a fresh run clears the stale last pointer.
	require.NoError(t, database.SetCurrentRun("run-b"))
	current, last, err = database.RunPointer()
	require.NoError(t, err)
	assert.Equal(t, "run-b", current)
	assert.Empty(t, last)
}

func TestFinalizeRunIdempotent(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, database.SetCurrentRun("run-a"))
	require.NoError(t, database.FinalizeRun("run-a"))

	// Second finalize is a no-op.
	require.NoError(t, database.FinalizeRun("run-a"))
	current, last, err := database.RunPointer()
	require.NoError(t, err)
	assert.Empty(t, current)
	assert.Equal(t, "run-a", last)

	// Finalizing an id that is not current changes nothing.
	require.NoError(t, database.SetCurrentRun("run-b"))
	require.NoError(t, database.FinalizeRun("run-zzz"))
	current, last, err = database.RunPointer()
	require.NoError(t, err)
	assert.Equal(t, "run-b", current)
	assert.Empty(t, last)
}

func TestClearRunPointers(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, database.SetCurrentRun("run-a"))
	require.NoError(t, database.FinalizeRun("run-a"))
	require.NoError(t, database.ClearRunPointers())

	current, last, err := database.RunPointer()
	require.NoError(t, err)
	assert.Empty(t, current)
	assert.Empty(t, last)
}

func TestLevelCacheRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	limit := 60
	levels := []models.Level{
		{ID: 2, Title: "Wave at a neighbor", LevelNumber: 2},
		{ID: 1, Title: "Drink a glass of water", LevelNumber: 1, SecondsLimit: &limit},
	}
	require.NoError(t, database.CacheLevels(levels))

	cached, err := database.CachedLevels()
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, int64(1), cached[0].ID)
	assert.Equal(t, int64(2), cached[1].ID)
	require.NotNil(t, cached[0].SecondsLimit)
	assert.Equal(t, 60, *cached[0].SecondsLimit)
	assert.Nil(t, cached[1].SecondsLimit)

	// Re-caching replaces the catalog.
	require.NoError(t, database.CacheLevels([]models.Level{{ID: 9, Title: "Two-minute tidy", LevelNumber: 1}}))
	cached, err = database.CachedLevels()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, int64(9), cached[0].ID)
}
