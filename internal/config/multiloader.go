package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/fsutil"
)

// MultiLoader dispatches every file found under the given paths to the
// FileLoader registered for its extension.
type MultiLoader struct {
	byExt map[string]FileLoader
}

// NewMultiLoader creates a loader from format-specific loaders. A later
// loader claiming an extension already claimed is an error.
func NewMultiLoader(loaders ...FileLoader) (*MultiLoader, error) {
	m := &MultiLoader{byExt: make(map[string]FileLoader)}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			if _, exists := m.byExt[ext]; exists {
				return nil, fmt.Errorf("extension %q claimed by more than one loader", ext)
			}
			m.byExt[ext] = l
		}
	}
	return m, nil
}

// Extensions returns the supported extensions, sorted.
func (m *MultiLoader) Extensions() []string {
	exts := make([]string, 0, len(m.byExt))
	for ext := range m.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load walks all paths, loads every supported file in a stable order and
// merges the results.
func (m *MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Config loader started.", "path_count", len(paths))

	files, err := m.findFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files with extensions %v found in %v", m.Extensions(), paths)
	}
	logger.Debug("Discovered config files.", "count", len(files))

	model := &Model{}
	for _, file := range files {
		loaded, err := m.byExt[filepath.Ext(file)].LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		model.Merge(loaded)
		logger.Debug("Loaded config file.", "file", file, "components", len(loaded.Components), "chains", len(loaded.Chains))
	}

	logger.Debug("Config loading complete.", "components", len(model.Components), "chains", len(model.Chains))
	return model, nil
}

// findFiles returns every supported file under paths, de-duplicated and
// sorted within each path.
func (m *MultiLoader) findFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		var found []string
		if info.IsDir() {
			for _, ext := range m.Extensions() {
				files, err := fsutil.FindFilesByExtension(path, ext)
				if err != nil {
					return nil, fmt.Errorf("error walking %s: %w", path, err)
				}
				found = append(found, files...)
			}
			sort.Strings(found)
		} else if _, ok := m.byExt[filepath.Ext(path)]; ok {
			found = []string{path}
		} else {
			return nil, fmt.Errorf("unsupported config file %s", path)
		}

		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	return all, nil
}
