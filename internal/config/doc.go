// Package config defines the format-agnostic job configuration model and the
// interfaces (Loader, Decoder) used to build it from files.
//
// The `config.Model` is the single source of truth for the host: the dag and
// planner packages only ever see the job.Set it holds. Concrete decoders for
// HCL, TOML and YAML live in their own packages, and the loader package
// combines them.
package config
