package planner

import "fmt"

// DisabledPolicy decides what happens when closure expansion reaches a
// disabled prerequisite of a job in the working set.
type DisabledPolicy int

const (
	// SkipDependents leaves the disabled prerequisite out and excludes every
	// job in the working set that transitively requires it.
	SkipDependents DisabledPolicy = iota
	// RunWithout leaves the disabled prerequisite out and still runs its
	// dependents.
	RunWithout
	// RunDisabled adds the disabled prerequisite to the working set like any
	// other job, so it runs.
	RunDisabled
)

var policyNames = map[DisabledPolicy]string{
	SkipDependents: "skip-dependents",
	RunWithout:     "run-without",
	RunDisabled:    "run-disabled",
}

func (p DisabledPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("DisabledPolicy(%d)", int(p))
}

// ParseDisabledPolicy parses the textual policy name. An empty string selects
// the default.
func ParseDisabledPolicy(s string) (DisabledPolicy, error) {
	switch s {
	case "", "skip-dependents":
		return SkipDependents, nil
	case "run-without":
		return RunWithout, nil
	case "run-disabled":
		return RunDisabled, nil
	default:
		return SkipDependents, fmt.Errorf("invalid disabled-prerequisite policy %q: must be 'skip-dependents', 'run-without' or 'run-disabled'", s)
	}
}
