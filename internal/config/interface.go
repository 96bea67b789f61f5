package config

import "context"

// Loader is the interface for a configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories and merges
	// everything it finds into a single Model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Decoder decodes a single configuration file of one format.
type Decoder interface {
	// Extensions lists the file name suffixes this decoder handles, e.g. ".hcl".
	Extensions() []string
	// DecodeFile parses the file at path into its raw, format-agnostic form.
	DecodeFile(ctx context.Context, path string) (*File, error)
}
