package cli

import (
	"errors"

	"github.com/vk/backupctl/internal/dag"
	"github.com/vk/backupctl/internal/orchestrator"
	"github.com/vk/backupctl/internal/planner"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitRunFailed  = 1
	ExitUsage      = 2
	ExitValidation = 3
	ExitPlanning   = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitError classifies err by the stage that produced it. It returns nil for
// a nil err.
func exitError(err error) error {
	var exitErr *ExitError
	var vErr *dag.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return exitErr
	case errors.As(err, &vErr):
		return &ExitError{Code: ExitValidation, Err: err}
	case errors.Is(err, planner.ErrPlanningFailure):
		return &ExitError{Code: ExitPlanning, Err: err}
	case errors.Is(err, orchestrator.ErrRunFailed), errors.Is(err, orchestrator.ErrLocked):
		return &ExitError{Code: ExitRunFailed, Err: err}
	default:
		return &ExitError{Code: ExitUsage, Err: err}
	}
}
