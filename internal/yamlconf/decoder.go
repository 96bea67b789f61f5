// Package yamlconf decodes job files written in YAML.
package yamlconf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/backupctl/internal/config"
	"github.com/vk/backupctl/internal/ctxlog"
)

// Decoder implements config.Decoder for .yaml and .yml files.
type Decoder struct{}

// NewDecoder creates a YAML decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

type fileRoot struct {
	Settings *settingsNode `yaml:"settings"`
	Jobs     []jobNode     `yaml:"jobs"`
}

type settingsNode struct {
	FailFast              *bool   `yaml:"fail_fast"`
	DisabledPrerequisites *string `yaml:"disabled_prerequisites"`
}

type jobNode struct {
	Name        string              `yaml:"name"`
	Enabled     *bool               `yaml:"enabled"`
	DependsOn   StringOrStringSlice `yaml:"depends_on"`
	Description string              `yaml:"description"`
	Command     string              `yaml:"command"`
	Timeout     string              `yaml:"timeout"`
}

// StringOrStringSlice unmarshals a field written either as a single string
// or as a list of strings.
type StringOrStringSlice []string

func (s *StringOrStringSlice) UnmarshalYAML(value *yaml.Node) error {
	var single string
	if err := value.Decode(&single); err == nil {
		*s = []string{single}
		return nil
	}
	var slice []string
	if err := value.Decode(&slice); err == nil {
		*s = slice
		return nil
	}
	return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: field must be a string or a list of strings", value.Line)}}
}

// Extensions implements config.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// DecodeFile implements config.Decoder.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*config.File, error) {
	ctxlog.FromContext(ctx).Debug("Decoding YAML job file.", "path", path)

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the configured job directories
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes YAML content. Unknown fields are rejected and an empty
// document yields a file without jobs.
func Parse(path string, data []byte) (*config.File, error) {
	var root fileRoot
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
	}

	out := &config.File{Path: path}
	if root.Settings != nil {
		out.Settings = &config.Settings{
			FailFast:              root.Settings.FailFast,
			DisabledPrerequisites: root.Settings.DisabledPrerequisites,
		}
	}
	for _, j := range root.Jobs {
		out.Jobs = append(out.Jobs, config.RawJob{
			Name:        j.Name,
			Enabled:     j.Enabled,
			DependsOn:   []string(j.DependsOn),
			Description: j.Description,
			Command:     j.Command,
			Timeout:     j.Timeout,
		})
	}
	return out, nil
}
