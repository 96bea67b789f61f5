// Package cli implements the backupctl command line with cobra. Every command
// failure is reported as an *ExitError carrying the process exit code.
package cli
