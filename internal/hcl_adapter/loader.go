package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/chainforge/internal/config"
	"github.com/vk/chainforge/internal/ctxlog"
)

// Loader is the HCL-specific implementation of config.FileLoader.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions handled by the loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// LoadFile parses one HCL file and translates every component and chain
// block in it into the format-agnostic model.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)
	ctx = ctxlog.WithLogger(ctx, logger)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	evalCtx := newEvalContext()
	model := &config.Model{Files: []string{path}}

	for _, c := range root.Components {
		comp, err := l.translateComponent(ctx, evalCtx, c, path)
		if err != nil {
			return nil, err
		}
		model.Components = append(model.Components, comp)
	}
	for _, c := range root.Chains {
		ch, err := l.translateChain(ctx, evalCtx, c, path)
		if err != nil {
			return nil, err
		}
		model.Chains = append(model.Chains, ch)
	}

	logger.Debug("HCL file loaded.", "components", len(model.Components), "chains", len(model.Chains))
	return model, nil
}
