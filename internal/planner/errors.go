package planner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPlanningFailure is wrapped by every *PlanningError.
var ErrPlanningFailure = errors.New("planning failure")

// FailureKind classifies a PlanningError.
type FailureKind int

const (
	// MissingPrerequisite means expansion reached a prerequisite that is not a
	// configured job. Validation reports this first, so it only happens when
	// validation was skipped.
	MissingPrerequisite FailureKind = iota
	// ResidualCycle means the working set could not be fully ordered.
	ResidualCycle
)

func (k FailureKind) String() string {
	switch k {
	case MissingPrerequisite:
		return "missing_prerequisite"
	case ResidualCycle:
		return "cycle"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// PlanningError reports why no execution order could be produced.
type PlanningError struct {
	Kind FailureKind
	// Jobs are the offending jobs: the missing prerequisite, or the cycle
	// candidates left out of the order.
	Jobs []string
	// Dependent is the job that referenced the missing prerequisite.
	Dependent string
}

func (e *PlanningError) Error() string {
	if e == nil {
		return ErrPlanningFailure.Error()
	}
	switch e.Kind {
	case MissingPrerequisite:
		return fmt.Sprintf("%s: job %q requires unknown job %q", ErrPlanningFailure, e.Dependent, strings.Join(e.Jobs, ", "))
	case ResidualCycle:
		return fmt.Sprintf("%s: dependency cycle among jobs: %s", ErrPlanningFailure, strings.Join(e.Jobs, ", "))
	default:
		return fmt.Sprintf("%s: %s", ErrPlanningFailure, e.Kind)
	}
}

func (e *PlanningError) Unwrap() error { return ErrPlanningFailure }
