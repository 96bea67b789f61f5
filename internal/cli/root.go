package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vk/backupctl/internal/app"
	"github.com/vk/backupctl/internal/config"
	"github.com/vk/backupctl/internal/loader"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPaths           []string
	logLevel              string
	logFormat             string
	disabledPrerequisites string
	noFailFast            bool
	lockFile              string
	healthcheckPort       int

	stdout io.Writer
	stderr io.Writer
	loader config.Loader
}

// NewRootCommand builds the command tree. Program output goes to stdout and
// logs go to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr, loader: loader.NewDefault()}

	rootCmd := &cobra.Command{
		Use:   "backupctl",
		Short: "backupctl - dependency-aware backup job runner",
		Long: `backupctl reads job definitions from HCL, TOML or YAML files, validates
the dependency graph between them and runs the requested jobs together with
their prerequisites in dependency order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringArrayVarP(&opts.configPaths, "config", "c", []string{"jobs"}, "Job file or directory (repeatable).")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.disabledPrerequisites, "disabled-prerequisites", "", "What to do with disabled prerequisites: 'skip-dependents', 'run-without' or 'run-disabled'.")
	flags.BoolVar(&opts.noFailFast, "no-fail-fast", false, "Keep going after validation errors and let planning decide.")
	flags.StringVar(&opts.lockFile, "lock-file", filepath.Join(os.TempDir(), "backupctl.lock"), "Lock file preventing overlapping runs. Empty disables locking.")
	flags.IntVar(&opts.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server during runs. 0 is disabled.")

	rootCmd.AddCommand(
		newValidateCommand(opts),
		newPlanCommand(opts),
		newRunCommand(opts),
	)
	return rootCmd
}

// Execute runs the command line and maps every failure to an *ExitError.
func Execute(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return exitError(err)
	}
	return nil
}

// appConfig turns the flags into a checked app.Config.
func (o *options) appConfig(failFast *bool, dryRun bool) (*app.Config, error) {
	if failFast == nil && o.noFailFast {
		off := false
		failFast = &off
	}
	cfg, err := app.NewConfig(app.Config{
		ConfigPaths:           o.configPaths,
		LogFormat:             o.logFormat,
		LogLevel:              o.logLevel,
		FailFast:              failFast,
		DisabledPrerequisites: o.disabledPrerequisites,
		LockFile:              o.lockFile,
		HealthcheckPort:       o.healthcheckPort,
		DryRun:                dryRun,
	})
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Err: err}
	}
	return cfg, nil
}
