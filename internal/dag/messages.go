package dag

import (
	"fmt"
	"strings"
)

// Kind classifies a ValidationMessage.
type Kind int

const (
	// KindBlank is a blank or whitespace-only prerequisite entry.
	KindBlank Kind = iota
	// KindMissing is a prerequisite that names no configured job.
	KindMissing
	// KindDisabled is a prerequisite that exists but is disabled.
	KindDisabled
	// KindCycle is a dependency cycle.
	KindCycle
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank_dependency"
	case KindMissing:
		return "missing_dependency"
	case KindDisabled:
		return "disabled_dependency"
	case KindCycle:
		return "cycle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Severity is the weight a host should give a message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationMessage identifies exactly one integrity problem in the graph.
type ValidationMessage struct {
	Kind Kind
	// Job is the job whose prerequisite list holds the problem. For cycles it
	// is the job the cycle was entered from.
	Job string
	// Target is the referenced prerequisite (missing and disabled only).
	Target string
	// Position is the zero-based index of the entry in the prerequisite list
	// (blank only).
	Position int
	// Path is the discovered cycle, first and last element equal.
	Path []string
}

// Severity returns SeverityWarning for disabled references, which are
// informational, and SeverityError for everything else.
func (m ValidationMessage) Severity() Severity {
	if m.Kind == KindDisabled {
		return SeverityWarning
	}
	return SeverityError
}

// String renders the message as a single diagnostic line.
func (m ValidationMessage) String() string {
	switch m.Kind {
	case KindBlank:
		return fmt.Sprintf("job %q has a blank dependency entry at position %d", m.Job, m.Position+1)
	case KindMissing:
		return fmt.Sprintf("job %q depends on missing job %q", m.Job, m.Target)
	case KindDisabled:
		return fmt.Sprintf("job %q depends on disabled job %q", m.Job, m.Target)
	case KindCycle:
		return "dependency cycle detected: " + strings.Join(m.Path, " -> ")
	default:
		return fmt.Sprintf("job %q: %s", m.Job, m.Kind)
	}
}

// Messages is the aggregated result of Validate.
type Messages []ValidationMessage

// Errors returns only the messages with SeverityError.
func (ms Messages) Errors() Messages {
	var out Messages
	for _, m := range ms {
		if m.Severity() == SeverityError {
			out = append(out, m)
		}
	}
	return out
}

// Warnings returns only the messages with SeverityWarning.
func (ms Messages) Warnings() Messages {
	var out Messages
	for _, m := range ms {
		if m.Severity() == SeverityWarning {
			out = append(out, m)
		}
	}
	return out
}

// Strings renders every message.
func (ms Messages) Strings() []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

// Err folds the error-severity messages into a *ValidationError, or returns
// nil when there are none.
func (ms Messages) Err() error {
	errs := ms.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Messages: errs}
}
