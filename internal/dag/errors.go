package dag

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic checks via errors.Is().
var (
	// ErrGraphIntegrity covers blank, missing and disabled prerequisites.
	ErrGraphIntegrity = errors.New("dependency graph integrity error")

	// ErrCycleDetected indicates at least one dependency cycle.
	ErrCycleDetected = errors.New("dependency cycle detected")
)

// ValidationError carries the messages that made a graph unusable. It wraps
// ErrGraphIntegrity and/or ErrCycleDetected depending on the kinds present.
type ValidationError struct {
	Messages Messages
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return ErrGraphIntegrity.Error()
	}
	if len(e.Messages) == 1 {
		return "invalid job graph: " + e.Messages[0].String()
	}
	return fmt.Sprintf("invalid job graph: %d problems: %s", len(e.Messages), strings.Join(e.Messages.Strings(), "; "))
}

// Unwrap exposes the sentinels matching the message kinds.
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	var integrity, cycle bool
	for _, m := range e.Messages {
		if m.Kind == KindCycle {
			cycle = true
		} else {
			integrity = true
		}
	}
	var out []error
	if integrity {
		out = append(out, ErrGraphIntegrity)
	}
	if cycle {
		out = append(out, ErrCycleDetected)
	}
	return out
}
