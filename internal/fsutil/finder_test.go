package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.hcl"))
	writeFile(t, filepath.Join(dir, "a.toml"))
	writeFile(t, filepath.Join(dir, "nested", "c.yaml"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	single := filepath.Join(t.TempDir(), "single.hcl")
	writeFile(t, single)

	// --- Act ---
	files, err := FindFilesByExtension(
		[]string{dir, single, filepath.Join(dir, "b.hcl"), filepath.Join(dir, "does-not-exist")},
		".hcl", ".toml", ".yaml",
	)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.toml"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.yaml"),
		single,
	}, files)
}

func TestFindFilesByExtension_PanicsWithoutExtensions(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { _, _ = FindFilesByExtension([]string{"."}) })
}

func TestFindFilesByExtension_IgnoresCase(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "JOBS.HCL"))
	writeFile(t, filepath.Join(dir, "db.Yml"))

	// --- Act ---
	files, err := FindFilesByExtension([]string{dir}, ".hcl", ".yml")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "JOBS.HCL"),
		filepath.Join(dir, "db.Yml"),
	}, files)
}
