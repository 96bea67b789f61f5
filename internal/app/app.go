package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/vk/backupctl/internal/config"
	"github.com/vk/backupctl/internal/ctxlog"
	"github.com/vk/backupctl/internal/dag"
	"github.com/vk/backupctl/internal/orchestrator"
	"github.com/vk/backupctl/internal/planner"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	model    *config.Model
	deps     *dag.DependencyMap
	messages dag.Messages
	planner  planner.Planner
	failFast bool

	pipeline       orchestrator.Pipeline
	httpServer     *http.Server
	healthListener net.Listener
}

// Option customises an App.
type Option func(*App)

// WithPipeline replaces the pipeline used by Run.
func WithPipeline(p orchestrator.Pipeline) Option {
	return func(a *App) { a.pipeline = p }
}

// NewApp loads the job files, builds the dependency map and validates it.
// Every validation message is logged. When fail-fast is in effect and any
// message is an error, NewApp returns a *dag.ValidationError.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "files", len(model.Files), "jobs", model.Jobs.Len())

	policy, failFast, err := resolveSettings(cfg, model.Settings)
	if err != nil {
		return nil, err
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   cfg,
		model:    model,
		deps:     dag.BuildMap(model.Jobs),
		planner:  planner.New(policy),
		failFast: failFast,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.pipeline == nil {
		if cfg.DryRun {
			a.pipeline = orchestrator.DryRunPipeline{}
		} else {
			a.pipeline = &orchestrator.CommandPipeline{Stdout: outW, Stderr: outW}
		}
	}

	a.messages = dag.Validate(model.Jobs, a.deps)
	for _, m := range a.messages {
		if m.Severity() == dag.SeverityError {
			logger.Error("Validation error.", "kind", m.Kind, "job", m.Job, "message", m.String())
		} else {
			logger.Warn("Validation warning.", "kind", m.Kind, "job", m.Job, "message", m.String())
		}
	}
	if failFast {
		if err := a.messages.Err(); err != nil {
			return nil, err
		}
	}
	logger.Debug("Dependency map validated.", "messages", len(a.messages), "policy", policy, "fail_fast", failFast)

	return a, nil
}

// resolveSettings applies flag values over job-file settings over defaults.
func resolveSettings(cfg *Config, s config.Settings) (planner.DisabledPolicy, bool, error) {
	failFast := true
	if s.FailFast != nil {
		failFast = *s.FailFast
	}
	if cfg.FailFast != nil {
		failFast = *cfg.FailFast
	}

	name := cfg.DisabledPrerequisites
	if name == "" && s.DisabledPrerequisites != nil {
		name = *s.DisabledPrerequisites
	}
	policy, err := planner.ParseDisabledPolicy(name)
	if err != nil {
		return 0, false, fmt.Errorf("settings: %w", err)
	}
	return policy, failFast, nil
}

// Model returns the loaded configuration model.
func (a *App) Model() *config.Model {
	return a.model
}

// Dependencies returns the dependency map built from the model.
func (a *App) Dependencies() *dag.DependencyMap {
	return a.deps
}

// Policy returns the disabled-prerequisite policy in effect.
func (a *App) Policy() planner.DisabledPolicy {
	return a.planner.Policy
}

// Validate returns the messages found while validating the dependency map.
func (a *App) Validate() dag.Messages {
	return a.messages
}

// Plan computes the execution order for requested.
func (a *App) Plan(requested []string) (*planner.Result, error) {
	a.logger.Debug("Planning.", "requested", requested, "policy", a.planner.Policy)

	res, err := a.planner.Plan(requested, a.deps, a.model.Jobs)
	if err != nil {
		a.logger.Error("Planning failed.", "error", err)
		return nil, err
	}
	for _, n := range res.Notes {
		if n.Warning() {
			a.logger.Warn(n.String(), "note", n.Kind, "job", n.Job)
		} else {
			a.logger.Info(n.String(), "note", n.Kind, "job", n.Job)
		}
	}
	a.logger.Debug("Plan computed.", "order", res.Order)
	return res, nil
}
