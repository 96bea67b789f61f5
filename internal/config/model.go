package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/backupctl/internal/job"
)

// ErrInvalidJob indicates a job block that cannot be turned into a definition.
var ErrInvalidJob = errors.New("invalid job definition")

// Model is the unified representation of every loaded configuration file.
type Model struct {
	Jobs     *job.Set
	Settings Settings
	// Files lists the files merged into the model, in load order.
	Files []string
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{Jobs: job.NewSet()}
}

// Settings are optional engine defaults declared in configuration. Command
// line flags take precedence over them.
type Settings struct {
	FailFast              *bool
	DisabledPrerequisites *string
}

// merge overlays every field that is set in other.
func (s *Settings) merge(other *Settings) {
	if other == nil {
		return
	}
	if other.FailFast != nil {
		s.FailFast = other.FailFast
	}
	if other.DisabledPrerequisites != nil {
		s.DisabledPrerequisites = other.DisabledPrerequisites
	}
}

// File is the decoded content of one configuration file.
type File struct {
	Path     string
	Jobs     []RawJob
	Settings *Settings
}

// RawJob is a job as written in a configuration file, before defaults and
// conversions are applied.
type RawJob struct {
	Name        string
	Enabled     *bool
	DependsOn   []string
	Description string
	Command     string
	Timeout     string
}

// Definition converts the raw job into a job.Definition. Jobs are enabled
// unless they say otherwise.
func (r RawJob) Definition(source string) (job.Definition, error) {
	def := job.Definition{
		Name:        r.Name,
		Enabled:     true,
		DependsOn:   r.DependsOn,
		Description: r.Description,
		Command:     r.Command,
		Source:      source,
	}
	if r.Enabled != nil {
		def.Enabled = *r.Enabled
	}
	if r.Timeout != "" {
		d, err := time.ParseDuration(r.Timeout)
		if err != nil {
			return job.Definition{}, fmt.Errorf("%w: job %q: timeout: %v", ErrInvalidJob, r.Name, err)
		}
		if d < 0 {
			return job.Definition{}, fmt.Errorf("%w: job %q: timeout must not be negative", ErrInvalidJob, r.Name)
		}
		def.Timeout = d
	}
	return def, nil
}

// Merge adds every job and setting of f to the model. Job names must be unique
// across all files.
func (m *Model) Merge(f *File) error {
	for _, raw := range f.Jobs {
		def, err := raw.Definition(f.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		if err := m.Jobs.Add(def); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	m.Settings.merge(f.Settings)
	m.Files = append(m.Files, f.Path)
	return nil
}
