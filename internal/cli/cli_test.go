package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backupJobs = `
job "Backup-All" {
  depends_on = ["Backup-Files", "Backup-DB"]
}
job "Backup-Files" {}
job "Backup-DB" {
  depends_on = ["Dump-DB"]
}
job "Dump-DB" {}
`

func writeJobs(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--lock-file", filepath.Join(t.TempDir(), "run.lock")}, args...)
	err := Execute(context.Background(), &stdout, &stderr, args)
	return stdout.String(), stderr.String(), err
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	assert.Equal(t, code, exitErr.Code, "unexpected exit code for %v", err)
	return exitErr
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, "-c", writeJobs(t, "jobs.hcl", backupJobs), "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "4 jobs valid")
	})

	t.Run("broken references", func(t *testing.T) {
		t.Parallel()
		dir := writeJobs(t, "jobs.yaml", "jobs:\n  - name: A\n    depends_on: [Missing, \"\"]\n  - name: Old\n    enabled: false\n  - name: B\n    depends_on: Old\n")

		out, _, err := execute(t, "-c", dir, "validate")

		requireExitCode(t, err, ExitValidation)
		assert.Contains(t, out, `job "A" depends on missing job "Missing"`)
		assert.Contains(t, out, `job "A" has a blank dependency entry at position 2`)
		assert.Contains(t, out, `job "B" depends on disabled job "Old"`)
	})
}

func TestPlan(t *testing.T) {
	t.Parallel()

	t.Run("backup example", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, "-c", writeJobs(t, "jobs.hcl", backupJobs), "plan", "Backup-All")

		require.NoError(t, err)
		assert.Contains(t, out, "Execution plan (skip-dependents):")
		assert.Contains(t, out, "  1. Backup-Files\n  2. Dump-DB\n  3. Backup-DB\n  4. Backup-All\n")
	})

	t.Run("all jobs", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, "-c", writeJobs(t, "jobs.hcl", backupJobs), "plan", "--all")

		require.NoError(t, err)
		assert.Contains(t, out, "  4. Backup-All\n")
	})

	t.Run("unknown job is a note", func(t *testing.T) {
		t.Parallel()
		out, _, err := execute(t, "-c", writeJobs(t, "jobs.hcl", backupJobs), "plan", "Nope")

		require.NoError(t, err)
		assert.Contains(t, out, "nothing to run")
		assert.Contains(t, out, `requested job "Nope" is not configured`)
	})

	t.Run("requires jobs", func(t *testing.T) {
		t.Parallel()
		_, _, err := execute(t, "-c", writeJobs(t, "jobs.hcl", backupJobs), "plan")
		requireExitCode(t, err, ExitUsage)
	})

	t.Run("cycle stops at validation", func(t *testing.T) {
		t.Parallel()
		dir := writeJobs(t, "jobs.toml", "[[job]]\nname = \"A\"\ndepends_on = [\"B\"]\n[[job]]\nname = \"B\"\ndepends_on = [\"A\"]\n")

		out, _, err := execute(t, "-c", dir, "plan", "A")

		requireExitCode(t, err, ExitValidation)
		assert.Contains(t, out, "dependency cycle detected: A -> B -> A")
	})

	t.Run("no fail fast reaches the planner", func(t *testing.T) {
		t.Parallel()
		dir := writeJobs(t, "jobs.hcl", `job "A" { depends_on = ["Gone"] }`)

		_, _, err := execute(t, "-c", dir, "--no-fail-fast", "plan", "A")

		requireExitCode(t, err, ExitPlanning)
	})

	t.Run("disabled prerequisite policy flag", func(t *testing.T) {
		t.Parallel()
		dir := writeJobs(t, "jobs.hcl", `
job "Dump-DB" { enabled = false }
job "Backup-DB" { depends_on = ["Dump-DB"] }
`)

		out, _, err := execute(t, "-c", dir, "--disabled-prerequisites", "run-without", "plan", "Backup-DB")

		require.NoError(t, err)
		assert.Contains(t, out, "Execution plan (run-without):")
		assert.Contains(t, out, "  1. Backup-DB\n")
		assert.NotContains(t, out, ". Dump-DB")
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("runs commands in order", func(t *testing.T) {
		t.Parallel()
		outDir := t.TempDir()
		dir := writeJobs(t, "jobs.hcl", fmt.Sprintf(`
job "Dump-DB" { command = "echo dump >> %[1]s/trace" }
job "Backup-DB" {
  depends_on = ["Dump-DB"]
  command    = "echo backup >> %[1]s/trace"
}
`, outDir))

		out, _, err := execute(t, "-c", dir, "run", "Backup-DB")

		require.NoError(t, err)
		trace, readErr := os.ReadFile(filepath.Join(outDir, "trace"))
		require.NoError(t, readErr)
		assert.Equal(t, "dump\nbackup\n", string(trace))
		assert.Contains(t, out, "2 succeeded, 0 failed, 0 skipped")
	})

	t.Run("failure skips dependents", func(t *testing.T) {
		t.Parallel()
		dir := writeJobs(t, "jobs.hcl", `
job "Dump-DB" { command = "exit 7" }
job "Backup-DB" { depends_on = ["Dump-DB"] }
job "Backup-Files" {}
`)

		out, _, err := execute(t, "-c", dir, "run", "--all")

		requireExitCode(t, err, ExitRunFailed)
		assert.Contains(t, out, "1 succeeded, 1 failed, 1 skipped")
		assert.Contains(t, out, `skipped due to upstream failure of "Dump-DB"`)
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()
		outDir := t.TempDir()
		dir := writeJobs(t, "jobs.hcl", fmt.Sprintf(`job "A" { command = "touch %s/ran" }`, outDir))

		_, logs, err := execute(t, "-c", dir, "run", "--dry-run", "A")

		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(outDir, "ran"))
		assert.Contains(t, logs, "Dry run, job not executed.")
	})
}

func TestExecute_UsageErrors(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "--bogus")
	requireExitCode(t, err, ExitUsage)

	_, _, err = execute(t, "--log-level", "loud", "validate")
	exitErr := requireExitCode(t, err, ExitUsage)
	assert.Contains(t, exitErr.Error(), "invalid log-level")

	_, _, err = execute(t, "-c", writeJobs(t, "jobs.hcl", `job "A" {`), "validate")
	requireExitCode(t, err, ExitUsage)
}

func TestExecute_Help(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "validate")
}
