// Package job defines the backup job definitions consumed by the dependency
// engine and the insertion-ordered Set that holds them.
//
// A Set is built once per process by the configuration loader and treated as
// read-only afterwards. Its iteration order is the declaration order of the
// jobs in the configuration, which keeps diagnostics and execution plans
// reproducible between runs.
package job
