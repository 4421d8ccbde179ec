package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/aspectgo/internal/config"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses every .hcl file under the given paths into one plan.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := config.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	plan := &config.Plan{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part := &config.Plan{}
		for _, block := range root.Aspects {
			spec, err := l.translateAspect(block, file)
			if err != nil {
				return nil, fmt.Errorf("failed to translate HCL file %s: %w", file, err)
			}
			part.Aspects = append(part.Aspects, spec)
		}
		if err := plan.Merge(part); err != nil {
			return nil, err
		}
		logger.Debug("Loaded plan file.", "file", file, "aspects", len(part.Aspects))
	}

	logger.Debug("HCL loading complete.", "files", len(files), "aspects", len(plan.Aspects))
	return plan, nil
}
