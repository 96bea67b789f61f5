// Package tomlconf decodes job files written in TOML.
package tomlconf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vk/backupctl/internal/config"
	"github.com/vk/backupctl/internal/ctxlog"
)

// Decoder implements config.Decoder for .toml files.
type Decoder struct{}

// NewDecoder creates a TOML decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

type fileRoot struct {
	Settings *settingsTable `toml:"settings"`
	Jobs     []jobTable     `toml:"job"`
}

type settingsTable struct {
	FailFast              *bool   `toml:"fail_fast"`
	DisabledPrerequisites *string `toml:"disabled_prerequisites"`
}

type jobTable struct {
	Name        string   `toml:"name"`
	Enabled     *bool    `toml:"enabled"`
	DependsOn   []string `toml:"depends_on"`
	Description string   `toml:"description"`
	Command     string   `toml:"command"`
	Timeout     string   `toml:"timeout"`
}

// Extensions implements config.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".toml"}
}

// DecodeFile implements config.Decoder.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*config.File, error) {
	ctxlog.FromContext(ctx).Debug("Decoding TOML job file.", "path", path)

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the configured job directories
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes TOML content. Unknown keys are rejected.
func Parse(path string, data []byte) (*config.File, error) {
	var root fileRoot
	md, err := toml.Decode(string(data), &root)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("parsing TOML %s: unknown keys: %s", path, strings.Join(keys, ", "))
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
			DependsOn:   j.DependsOn,
			Description: j.Description,
			Command:     j.Command,
			Timeout:     j.Timeout,
		})
	}
	return out, nil
}
