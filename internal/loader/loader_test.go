package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/backupctl/internal/job"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MixedFormats(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "a_files.hcl", `
settings {
  fail_fast = true
}
job "Backup-Files" {}
`)
	writeFile(t, dir, "b_db.toml", `
[settings]
disabled_prerequisites = "run-without"

[[job]]
name = "Dump-DB"

[[job]]
name = "Backup-DB"
depends_on = ["Dump-DB"]
`)
	writeFile(t, dir, "nested/c_legacy.yaml", `
settings:
  fail_fast: false
jobs:
  - name: Old
    enabled: false
`)
	writeFile(t, dir, "README.md", "not a job file")

	// --- Act ---
	model, err := NewDefault().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"Backup-Files", "Dump-DB", "Backup-DB", "Old"}, model.Jobs.Names())
	assert.Len(t, model.Files, 3)

	def, ok := model.Jobs.Get("Backup-DB")
	require.True(t, ok)
	assert.Equal(t, []string{"Dump-DB"}, def.DependsOn)
	assert.True(t, def.Enabled)
	assert.Equal(t, filepath.Join(dir, "b_db.toml"), def.Source)
	assert.False(t, model.Jobs.IsEnabled("Old"))

	require.NotNil(t, model.Settings.FailFast)
	assert.False(t, *model.Settings.FailFast, "later files override earlier settings")
	assert.Equal(t, "run-without", *model.Settings.DisabledPrerequisites)
}

func TestLoad_DuplicateAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "one.hcl", `job "A" {}`)
	writeFile(t, dir, "two.yml", "jobs:\n  - name: A\n")

	_, err := NewDefault().Load(context.Background(), dir)

	require.Error(t, err)
	require.ErrorIs(t, err, job.ErrDuplicateJob)
}

func TestLoad_NoFiles(t *testing.T) {
	t.Parallel()

	model, err := NewDefault().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))

	require.NoError(t, err)
	assert.Equal(t, 0, model.Jobs.Len())
	assert.Empty(t, model.Files)
}

func TestLoad_DecodeErrorStops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "broken.toml", "[[job]\n")

	_, err := NewDefault().Load(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.toml")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "jobs.hcl", `job "A" { timeout = "soon" }`)

	_, err := NewDefault().Load(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `job "A": timeout`)
}

func TestNew_Extensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".hcl", ".toml", ".yaml", ".yml"}, NewDefault().Extensions())

	_, err := New().Load(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestLoad_UppercaseExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "JOBS.HCL", `job "Dump-DB" {}`)

	// --- Act ---
	model, err := NewDefault().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"Dump-DB"}, model.Jobs.Names())
}
