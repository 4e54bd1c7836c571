package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageCopiesFile(t *testing.T) {
	srcDir := t.TempDir()
	stagingDir := filepath.Join(t.TempDir(), "staging")

	srcPath := filepath.Join(srcDir, "proof.jpg")
	require.NoError(t, os.WriteFile(srcPath, []byte("jpeg-bytes"), 0644))

	stager := NewStager(stagingDir)
	staged, err := stager.Stage(srcPath)
	require.NoError(t, err)

	assert.Equal(t, srcPath, staged.SourcePath)
	assert.Equal(t, ".jpg", filepath.Ext(staged.Path))

	data, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	// Staged copy survives the source going away.
	require.NoError(t, os.Remove(srcPath))
	_, err = os.Stat(staged.Path)
	assert.NoError(t, err)
}

func TestReleaseRemovesCopy(t *testing.T) {
	srcDir := t.TempDir()
	stagingDir := t.TempDir()

	srcPath := filepath.Join(srcDir, "proof.png")
	require.NoError(t, os.WriteFile(srcPath, []byte("png"), 0644))

	staged, err := NewStager(stagingDir).Stage(srcPath)
	require.NoError(t, err)

	staged.Release()
	_, err = os.Stat(staged.Path)
	assert.True(t, os.IsNotExist(err))

	// Double release and nil release are safe.
	staged.Release()
	var nilStaged *Staged
	nilStaged.Release()
}

func TestSweepClearsLeftovers(t *testing.T) {
	stagingDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stagingDir, "old.jpg"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(stagingDir, "older.mp4"), []byte("y"), 0644))

	stager := NewStager(stagingDir)
	require.NoError(t, stager.Sweep())

	entries, err := os.ReadDir(stagingDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Sweeping a missing directory is not an error.
	assert.NoError(t, NewStager(filepath.Join(stagingDir, "missing")).Sweep())
}
