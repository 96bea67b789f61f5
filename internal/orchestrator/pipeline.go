package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vk/backupctl/internal/ctxlog"
	"github.com/vk/backupctl/internal/job"
)

// Pipeline performs the actual work of one job.
type Pipeline interface {
	Run(ctx context.Context, def job.Definition) error
}

// PipelineFunc adapts a function to the Pipeline interface.
type PipelineFunc func(ctx context.Context, def job.Definition) error

// Run implements Pipeline.
func (f PipelineFunc) Run(ctx context.Context, def job.Definition) error {
	return f(ctx, def)
}

// DryRunPipeline logs each job instead of running it.
type DryRunPipeline struct{}

// Run implements Pipeline.
func (DryRunPipeline) Run(ctx context.Context, def job.Definition) error {
	ctxlog.FromContext(ctx).Info("Dry run, job not executed.", "command", def.Command, "timeout", def.Timeout)
	return nil
}

// waitDelay bounds how long a killed command may keep its output pipes open
// through orphaned children.
const waitDelay = 2 * time.Second

// CommandPipeline runs a job's Command through a shell.
type CommandPipeline struct {
	// Shell defaults to "sh".
	Shell string
	// Stdout and Stderr receive the command output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Pipeline. Jobs without a command succeed immediately.
func (p *CommandPipeline) Run(ctx context.Context, def job.Definition) error {
	logger := ctxlog.FromContext(ctx)
	if strings.TrimSpace(def.Command) == "" {
		logger.Info("Job has no command, nothing to do.")
		return nil
	}

	if def.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, def.Timeout)
		defer cancel()
	}

	shell := p.Shell
	if shell == "" {
		shell = "sh"
	}

	var stderrTail bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", def.Command) //nolint:gosec // commands come from the operator's job files
	cmd.Env = append(os.Environ(), "BACKUPCTL_JOB="+def.Name)
	cmd.WaitDelay = waitDelay
	cmd.Stdout = p.Stdout
	if p.Stderr != nil {
		cmd.Stderr = io.MultiWriter(p.Stderr, &stderrTail)
	} else {
		cmd.Stderr = &stderrTail
	}

	logger.Debug("Starting job command.", "shell", shell, "command", def.Command)
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("job %q timed out after %s: %w", def.Name, def.Timeout, context.DeadlineExceeded)
	}
	if msg := lastLine(stderrTail.String()); msg != "" {
		return fmt.Errorf("job %q command failed: %w: %s", def.Name, err, msg)
	}
	return fmt.Errorf("job %q command failed: %w", def.Name, err)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
