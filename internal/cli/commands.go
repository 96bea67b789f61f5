package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vk/backupctl/internal/app"
	"github.com/vk/backupctl/internal/dag"
	"github.com/vk/backupctl/internal/style"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check job files for broken references and dependency cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			off := false
			a, err := opts.newApp(&off, false)
			if err != nil {
				return err
			}

			p := style.NewPrinter(opts.stdout)
			msgs := a.Validate()
			printMessages(p, msgs)
			if errs := msgs.Errors(); len(errs) > 0 {
				return &ExitError{Code: ExitValidation, Err: errs.Err()}
			}
			p.Println(p.Pass(fmt.Sprintf("%d jobs valid", a.Model().Jobs.Len())), p.Dim(fmt.Sprintf("(%d files, %d warnings)", len(a.Model().Files), len(msgs))))
			return nil
		},
	}
}

func newPlanCommand(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "plan [JOB...]",
		Short: "Show the execution order for the requested jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return &ExitError{Code: ExitUsage, Message: "plan requires at least one job name or --all"}
			}
			a, err := opts.newApp(nil, false)
			if err != nil {
				return err
			}
			requested := requestedJobs(a, args, all)

			res, err := a.Plan(requested)
			if err != nil {
				return exitError(err)
			}

			p := style.NewPrinter(opts.stdout)
			p.Println(p.Header(fmt.Sprintf("Execution plan (%s):", a.Policy())))
			if len(res.Order) == 0 {
				p.Println(p.Dim("  nothing to run"))
			}
			for i, name := range res.Order {
				p.Printf("%3d. %s\n", i+1, name)
			}
			for _, n := range res.Notes {
				if n.Warning() {
					p.Println(p.Warn("  ! " + n.String()))
				} else {
					p.Println(p.Dim("  - " + n.String()))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Plan every configured job.")
	return cmd
}

func newRunCommand(opts *options) *cobra.Command {
	var all, dryRun bool
	cmd := &cobra.Command{
		Use:   "run [JOB...]",
		Short: "Run the requested jobs and their prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return &ExitError{Code: ExitUsage, Message: "run requires at least one job name or --all"}
			}
			a, err := opts.newApp(nil, dryRun)
			if err != nil {
				return err
			}

			report, err := a.Run(cmd.Context(), requestedJobs(a, args, all))
			if report != nil {
				p := style.NewPrinter(opts.stdout)
				printReport(p, report)
			}
			return exitError(err)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Run every configured job.")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the jobs that would run without running them.")
	return cmd
}

// newApp builds the app, printing validation messages when fail-fast stops it.
func (o *options) newApp(failFast *bool, dryRun bool) (*app.App, error) {
	cfg, err := o.appConfig(failFast, dryRun)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(o.stderr, cfg, o.loader)
	if err != nil {
		var vErr *dag.ValidationError
		if errors.As(err, &vErr) {
			printMessages(style.NewPrinter(o.stdout), vErr.Messages)
		}
		return nil, exitError(err)
	}
	return a, nil
}

func requestedJobs(a *app.App, args []string, all bool) []string {
	if all {
		return a.Model().Jobs.Names()
	}
	return args
}
