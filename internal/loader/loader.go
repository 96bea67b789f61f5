// Package loader implements config.Loader by dispatching every discovered job
// file to the decoder registered for its extension.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/backupctl/internal/config"
	"github.com/vk/backupctl/internal/ctxlog"
	"github.com/vk/backupctl/internal/fsutil"
	"github.com/vk/backupctl/internal/hcl"
	"github.com/vk/backupctl/internal/tomlconf"
	"github.com/vk/backupctl/internal/yamlconf"
)

// Loader merges job files of every registered format into one config.Model.
type Loader struct {
	decoders map[string]config.Decoder
	exts     []string
}

// New creates a loader for the given decoders. Later decoders win when two
// claim the same extension.
func New(decoders ...config.Decoder) *Loader {
	l := &Loader{decoders: make(map[string]config.Decoder)}
	for _, d := range decoders {
		for _, ext := range d.Extensions() {
			ext = strings.ToLower(ext)
			if _, ok := l.decoders[ext]; !ok {
				l.exts = append(l.exts, ext)
			}
			l.decoders[ext] = d
		}
	}
	return l
}

// NewDefault creates a loader for HCL, TOML and YAML job files.
func NewDefault() *Loader {
	return New(hcl.NewDecoder(), tomlconf.NewDecoder(), yamlconf.NewDecoder())
}

// Extensions lists the file extensions the loader understands.
func (l *Loader) Extensions() []string {
	return append([]string(nil), l.exts...)
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Job loader started.", "path_count", len(paths), "extensions", l.exts)

	if len(l.exts) == 0 {
		return nil, fmt.Errorf("no job file decoders registered")
	}
	model := config.NewModel()

	files, err := fsutil.FindFilesByExtension(paths, l.exts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find job files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No job files found.", "paths", paths)
		return model, nil
	}
	logger.Debug("Discovered job files.", "count", len(files))

	for _, path := range files {
		dec := l.decoderFor(path)
		if dec == nil {
			continue
		}
		f, err := dec.DecodeFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(f); err != nil {
			return nil, err
		}
	}

	logger.Debug("Job loader finished.", "files", len(model.Files), "jobs", model.Jobs.Len())
	return model, nil
}

func (l *Loader) decoderFor(path string) config.Decoder {
	ext := strings.ToLower(filepath.Ext(path))
	return l.decoders[ext]
}
