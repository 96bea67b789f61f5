package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/backupctl/internal/planner"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPaths are job files or directories searched for job files.
	ConfigPaths []string

	LogFormat string
	LogLevel  string

	// FailFast aborts startup on validation errors. Nil defers to the job
	// files' settings and then to true.
	FailFast *bool
	// DisabledPrerequisites names a planner.DisabledPolicy. Empty defers to
	// the job files' settings and then to the planner default.
	DisabledPrerequisites string

	// LockFile guards against overlapping runs. Empty disables locking.
	LockFile        string
	HealthcheckPort int
	DryRun          bool
}

// NewConfig checks cfg and returns a normalised copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 {
		return nil, errors.New("at least one config path is required")
	}
	for _, p := range cfg.ConfigPaths {
		if strings.TrimSpace(p) == "" {
			return nil, errors.New("config paths cannot be empty")
		}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if _, err := planner.ParseDisabledPolicy(cfg.DisabledPrerequisites); err != nil {
		return nil, err
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}
