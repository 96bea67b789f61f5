// Package hcl provides the HCL implementation of config.Decoder. It parses
// `job` and `settings` blocks with hclparse/gohcl and evaluates expressions
// against an `env` object holding the process environment, so job files can
// write `command = "tar -czf ${env.BACKUP_ROOT}/home.tgz /home"`.
package hcl
