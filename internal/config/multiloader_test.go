package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chainforge/internal/ctxlog"
)

// lineLoader treats every line of a file as a component id.
type lineLoader struct {
	exts []string
}

func (l *lineLoader) Extensions() []string { return l.exts }

func (l *lineLoader) LoadFile(_ context.Context, path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Model{Files: []string{path}}
	for _, line := range strings.Fields(string(data)) {
		m.Components = append(m.Components, &Component{ID: line, File: path})
	}
	return m, nil
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMultiLoader(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"b.txt":        "B",
		"a.txt":        "A1 A2",
		"sub/c.lst":    "C",
		"ignored.json": "X",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	loader, err := NewMultiLoader(&lineLoader{exts: []string{".txt"}}, &lineLoader{exts: []string{".lst"}})
	require.NoError(t, err)
	assert.Equal(t, []string{".lst", ".txt"}, loader.Extensions())

	m, err := loader.Load(testContext(), root, filepath.Join(root, "a.txt"))
	require.NoError(t, err)

	var ids []string
	for _, c := range m.Components {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"A1", "A2", "B", "C"}, ids)
	assert.Len(t, m.Files, 3)
}

func TestMultiLoader_Errors(t *testing.T) {
	_, err := NewMultiLoader(&lineLoader{exts: []string{".txt"}}, &lineLoader{exts: []string{".txt"}})
	assert.ErrorContains(t, err, "claimed by more than one loader")

	loader, err := NewMultiLoader(&lineLoader{exts: []string{".txt"}})
	require.NoError(t, err)

	_, err = loader.Load(testContext(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "error accessing path")

	_, err = loader.Load(testContext(), t.TempDir())
	assert.ErrorContains(t, err, "no config files")

	other := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))
	_, err = loader.Load(testContext(), other)
	assert.ErrorContains(t, err, "unsupported config file")
}
