package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/vk/backupctl/internal/ctxlog"
	"github.com/vk/backupctl/internal/dag"
	"github.com/vk/backupctl/internal/job"
)

var (
	// ErrRunFailed is returned when at least one job failed or the run was cut short.
	ErrRunFailed = errors.New("run failed")
	// ErrLocked is returned when another run holds the lock file.
	ErrLocked = errors.New("another run is in progress")
)

// Orchestrator runs planned jobs sequentially.
type Orchestrator struct {
	pipeline Pipeline
	lockFile string
	now      func() time.Time
	newID    func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLockFile makes every run hold an exclusive lock on path. An empty path
// disables locking.
func WithLockFile(path string) Option {
	return func(o *Orchestrator) { o.lockFile = path }
}

// New creates an orchestrator that hands each job to pipeline.
func New(pipeline Pipeline, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		pipeline: pipeline,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes order, which must be topologically sorted. A job is skipped
// when any of its prerequisites in the run failed or was skipped. Once ctx is
// done every remaining job is skipped.
func (o *Orchestrator) Run(ctx context.Context, order []string, jobs *job.Set, deps *dag.DependencyMap) (*Report, error) {
	report := &Report{RunID: o.newID(), Started: o.now()}
	ctx, logger := ctxlog.With(ctx, "run_id", report.RunID)

	unlock, err := o.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	logger.Info("🚀 Starting run.", "jobs", len(order))

	status := make(map[string]Status, len(order))
	var firstErr error
	var firstFailed string

	for _, name := range order {
		jobCtx, jobLogger := ctxlog.With(ctx, "job", name)
		res := JobResult{Job: name}
		cause := blockedBy(name, deps, status)

		switch {
		case ctx.Err() != nil:
			res.Status = Skipped
			res.Err = ctx.Err()
			jobLogger.Warn("Context canceled, skipping job.")
		case cause != "":
			res.Status = Skipped
			res.Cause = cause
			res.Err = fmt.Errorf("skipped due to upstream failure of %q", res.Cause)
			jobLogger.Warn("Skipping job due to upstream failure.", "dependency", res.Cause)
		default:
			def, ok := jobs.Get(name)
			if !ok {
				def = job.Definition{Name: name, Enabled: true}
			}
			jobLogger.Info("▶️ Running job.")
			start := o.now()
			err := o.pipeline.Run(jobCtx, def)
			res.Duration = o.now().Sub(start)
			if err != nil {
				res.Status = Failed
				res.Err = err
				jobLogger.Error("Job failed.", "error", err, "duration", res.Duration)
				if firstErr == nil {
					firstErr, firstFailed = err, name
				}
			} else {
				res.Status = Succeeded
				jobLogger.Info("✅ Job succeeded.", "duration", res.Duration)
			}
		}

		status[name] = res.Status
		report.Results = append(report.Results, res)
	}

	report.Duration = o.now().Sub(report.Started)
	logger.Info("🏁 Run finished.",
		"succeeded", report.Count(Succeeded),
		"failed", report.Count(Failed),
		"skipped", report.Count(Skipped),
		"duration", report.Duration,
	)

	switch {
	case firstErr != nil:
		return report, fmt.Errorf("%w: job %q: %w", ErrRunFailed, firstFailed, firstErr)
	case ctx.Err() != nil && report.Count(Skipped) > 0:
		return report, fmt.Errorf("%w: %w", ErrRunFailed, ctx.Err())
	}
	return report, nil
}

// blockedBy returns the first prerequisite of name that did not succeed in
// this run, or "".
func blockedBy(name string, deps *dag.DependencyMap, status map[string]Status) string {
	prereqs, _ := deps.Prerequisites(name)
	for _, p := range prereqs {
		if s, ran := status[p]; ran && s != Succeeded {
			return p
		}
	}
	return ""
}

func (o *Orchestrator) lock() (func(), error) {
	if o.lockFile == "" {
		return func() {}, nil
	}
	if dir := filepath.Dir(o.lockFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating lock directory: %w", err)
		}
	}

	fileLock := flock.New(o.lockFile)
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock %s held by another process)", ErrLocked, o.lockFile)
	}
	return func() { _ = fileLock.Unlock() }, nil
}
