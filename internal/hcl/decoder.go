package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/backupctl/internal/config"
	"github.com/vk/backupctl/internal/ctxlog"
)

// Decoder is the HCL-specific implementation of the config.Decoder interface.
type Decoder struct {
	// Env overrides the process environment exposed as `env`. Nil means
	// os.Environ().
	Env map[string]string
}

// NewDecoder creates a new HCL decoder bound to the process environment.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// fileRoot is the set of top-level blocks allowed in a job file.
type fileRoot struct {
	Settings *settingsBlock `hcl:"settings,block"`
	Jobs     []*jobBlock    `hcl:"job,block"`
}

type settingsBlock struct {
	FailFast              *bool   `hcl:"fail_fast,optional"`
	DisabledPrerequisites *string `hcl:"disabled_prerequisites,optional"`
}

type jobBlock struct {
	Name        string   `hcl:"name,label"`
	Enabled     *bool    `hcl:"enabled,optional"`
	DependsOn   []string `hcl:"depends_on,optional"`
	Description string   `hcl:"description,optional"`
	Command     string   `hcl:"command,optional"`
	Timeout     string   `hcl:"timeout,optional"`
}

// Extensions implements config.Decoder.
func (d *Decoder) Extensions() []string {
	return []string{".hcl"}
}

// DecodeFile implements config.Decoder.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding HCL job file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, d.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	out := &config.File{Path: path}
	if root.Settings != nil {
		out.Settings = &config.Settings{
			FailFast:              root.Settings.FailFast,
			DisabledPrerequisites: root.Settings.DisabledPrerequisites,
		}
	}
	for _, b := range root.Jobs {
		out.Jobs = append(out.Jobs, config.RawJob{
			Name:        b.Name,
			Enabled:     b.Enabled,
			DependsOn:   b.DependsOn,
			Description: b.Description,
			Command:     b.Command,
			Timeout:     b.Timeout,
		})
	}

	logger.Debug("HCL job file decoded.", "path", path, "jobs", len(out.Jobs), "has_settings", out.Settings != nil)
	return out, nil
}

// evalContext exposes the environment as the `env` object.
func (d *Decoder) evalContext() *hcl.EvalContext {
	env := d.Env
	if env == nil {
		env = make(map[string]string)
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
				env[k] = v
			}
		}
	}

	vars := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vars[k] = cty.StringVal(v)
	}
	envVal := cty.EmptyObjectVal
	if len(vars) > 0 {
		envVal = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
	}
}
