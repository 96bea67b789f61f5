package app

import (
	"context"

	"github.com/vk/backupctl/internal/ctxlog"
	"github.com/vk/backupctl/internal/orchestrator"
)

// Run plans requested and executes the resulting order. The report is nil
// only when planning fails or the run lock cannot be taken.
func (a *App) Run(ctx context.Context, requested []string) (*orchestrator.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	res, err := a.Plan(requested)
	if err != nil {
		return nil, err
	}

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(a.config.HealthcheckPort); err != nil {
			return nil, err
		}
		defer func() { _ = a.closeHealthcheckServer() }()
	}

	if len(res.Order) == 0 {
		a.logger.Warn("Nothing to run for the requested jobs.", "requested", requested)
	}

	orch := orchestrator.New(a.pipeline, orchestrator.WithLockFile(a.config.LockFile))
	report, err := orch.Run(ctx, res.Order, a.model.Jobs, a.deps)

	a.logger.Debug("App.Run method finished.")
	return report, err
}
