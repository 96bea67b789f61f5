package planner

import "fmt"

// NoteKind classifies a Note.
type NoteKind int

const (
	// UnknownRequested is a requested name that is not a configured job.
	UnknownRequested NoteKind = iota
	// DisabledRequested is a requested job that is disabled.
	DisabledRequested
	// DisabledPrerequisite is a disabled prerequisite left out of the plan.
	DisabledPrerequisite
	// ExcludedDependent is a job excluded because it needs a disabled job.
	ExcludedDependent
	// DisabledIncluded is a disabled prerequisite that will run anyway.
	DisabledIncluded
)

func (k NoteKind) String() string {
	switch k {
	case UnknownRequested:
		return "unknown_requested"
	case DisabledRequested:
		return "disabled_requested"
	case DisabledPrerequisite:
		return "disabled_prerequisite"
	case ExcludedDependent:
		return "excluded_dependent"
	case DisabledIncluded:
		return "disabled_included"
	default:
		return fmt.Sprintf("NoteKind(%d)", int(k))
	}
}

// Note is an informational or warning diagnostic produced while expanding the
// working set. Notes never fail planning.
type Note struct {
	Kind NoteKind
	Job  string
	// Cause names the job that led to this note: the dependent that required
	// a disabled prerequisite, or the disabled job behind an exclusion.
	Cause string
}

// Warning reports whether the note deserves warning level. Only unknown
// requested names do; everything else is expected when jobs are disabled.
func (n Note) Warning() bool {
	return n.Kind == UnknownRequested
}

func (n Note) String() string {
	switch n.Kind {
	case UnknownRequested:
		return fmt.Sprintf("requested job %q is not configured, skipping", n.Job)
	case DisabledRequested:
		return fmt.Sprintf("requested job %q is disabled, skipping it and its prerequisites", n.Job)
	case DisabledPrerequisite:
		return fmt.Sprintf("prerequisite %q of job %q is disabled and will not run", n.Job, n.Cause)
	case ExcludedDependent:
		return fmt.Sprintf("job %q excluded because it requires disabled job %q", n.Job, n.Cause)
	case DisabledIncluded:
		return fmt.Sprintf("disabled job %q will run as a prerequisite of %q", n.Job, n.Cause)
	default:
		return fmt.Sprintf("%s: %s", n.Kind, n.Job)
	}
}
