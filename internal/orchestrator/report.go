package orchestrator

import (
	"time"
)

// Status is the outcome of a single job in a run.
type Status int

const (
	Succeeded Status = iota
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// JobResult records what happened to one job.
type JobResult struct {
	Job      string
	Status   Status
	Err      error
	Duration time.Duration
	// Cause names the failed or skipped prerequisite that led to a skip.
	// It is empty for skips caused by cancellation.
	Cause string
}

// Report summarises a run in execution order.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Results  []JobResult
}

// Count returns the number of jobs with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Jobs returns the names of the jobs with the given status, in run order.
func (r *Report) Jobs(s Status) []string {
	var out []string
	for _, res := range r.Results {
		if res.Status == s {
			out = append(out, res.Job)
		}
	}
	return out
}

// Result returns the result for name.
func (r *Report) Result(name string) (JobResult, bool) {
	for _, res := range r.Results {
		if res.Job == name {
			return res, true
		}
	}
	return JobResult{}, false
}

// OK reports whether every job succeeded.
func (r *Report) OK() bool {
	return r.Count(Succeeded) == len(r.Results)
}
