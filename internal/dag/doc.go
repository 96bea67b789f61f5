// Package dag builds and validates the job dependency graph.
//
// BuildMap turns the configured job definitions into a DependencyMap, and
// Validate checks that map for integrity problems (blank, missing and disabled
// prerequisites) and for cycles. Both are pure functions over in-memory data:
// they never log, never mutate their inputs and report every problem as a
// ValidationMessage instead of failing on the first one.
//
// The map is built once for all jobs, enabled or not, because validation
// needs global knowledge. Planning a run over a subset of jobs is the job of
// the planner package, which consumes the same DependencyMap.
package dag
