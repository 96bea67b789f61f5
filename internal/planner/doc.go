// Package planner computes execution plans for a requested subset of jobs.
//
// A plan is built in three steps:
//
//  1. Closure expansion: breadth-first from the requested jobs over the
//     dependency map, collecting the working set of jobs that must run.
//  2. Topological sort: Kahn's algorithm over the working set, with a FIFO
//     ready queue seeded in working-set insertion order so ties between
//     simultaneously eligible jobs break the same way on every call.
//  3. Completeness check: a working set that cannot be fully ordered holds a
//     cycle, and planning fails naming the jobs left over.
//
// Planning never returns a partial order: on error the order is nil.
//
// Disabled prerequisites discovered during expansion are handled according to
// a DisabledPolicy. The default, SkipDependents, never runs a job whose
// prerequisite is disabled.
package planner
