// Package orchestrator executes a planned job order one job at a time. It
// guards the run with an exclusive file lock, tags every log line with a run
// id and skips the dependents of any job that fails.
package orchestrator
