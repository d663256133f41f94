package config

import (
	"context"
)

// Loader is the interface for reading declarations from a set of paths.
type Loader interface {
	// Load reads every supported file under the given paths and returns the
	// merged model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// FileLoader is implemented by format-specific loaders.
type FileLoader interface {
	// Extensions lists the file extensions the loader understands, with the dot.
	Extensions() []string
	// LoadFile parses a single file into a model.
	LoadFile(ctx context.Context, path string) (*Model, error)
}
