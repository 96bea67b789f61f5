/*
backupctl runs backup jobs in dependency order.

Jobs are declared in HCL, TOML or YAML files. Each job may name the jobs it
depends on; backupctl validates the resulting graph and runs any requested
job after all of its prerequisites.

Usage:

	backupctl [flags] <command> [JOB...]

Commands:

	backupctl validate            Check job files for broken references and cycles
	backupctl plan JOB...         Show the execution order
	backupctl run JOB...          Run jobs with their prerequisites
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/backupctl/internal/cli"
)

// main is the entrypoint for the backupctl application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	os.Exit(exitCode(os.Stderr, err))
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	return cli.Execute(ctx, outW, errW, args)
}

// exitCode reports err on errW and returns the process exit code for it.
func exitCode(errW io.Writer, err error) int {
	if err == nil {
		return cli.ExitOK
	}
	fmt.Fprintln(errW, "Error:", err)

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return cli.ExitRunFailed
}
