package tomlconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	data := []byte(`
[settings]
fail_fast = true

[[job]]
name = "Backup-Files"

[[job]]
name = "Backup-DB"
depends_on = ["Dump-DB"]
timeout = "1h"

[[job]]
name = "Old"
enabled = false
`)

	// --- Act ---
	f, err := Parse("jobs.toml", data)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "jobs.toml", f.Path)
	require.NotNil(t, f.Settings)
	assert.True(t, *f.Settings.FailFast)
	assert.Nil(t, f.Settings.DisabledPrerequisites)

	require.Len(t, f.Jobs, 3)
	assert.Equal(t, "Backup-Files", f.Jobs[0].Name)
	assert.Nil(t, f.Jobs[0].Enabled)
	assert.Equal(t, []string{"Dump-DB"}, f.Jobs[1].DependsOn)
	assert.Equal(t, "1h", f.Jobs[1].Timeout)
	require.NotNil(t, f.Jobs[2].Enabled)
	assert.False(t, *f.Jobs[2].Enabled)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse("bad.toml", []byte("[[job]\nname = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing TOML bad.toml")

	_, err = Parse("extra.toml", []byte("[[job]]\nname = \"A\"\nschedule = \"nightly\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: job.schedule")
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jobs.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[job]]\nname = \"A\"\n"), 0600))

	f, err := NewDecoder().DecodeFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, f.Jobs, 1)
	assert.Nil(t, f.Settings)

	_, err = NewDecoder().DecodeFile(context.Background(), filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
