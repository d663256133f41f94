package watcher_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/watcher"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctxlog.WithLogger(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func start(t *testing.T, paths ...string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		Paths:       paths,
		Extensions:  []string{".hcl"},
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start(testContext(t))
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chains.hcl")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	onChange := start(t, dir)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("x%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_NestedDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "team")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	onChange := start(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(nested, "new.hcl"), []byte("x"), 0o644))

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification for nested file")
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o644))

	onChange := start(t, dir)
	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o644))

	select {
	case <-onChange:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_SingleFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.hcl")
	sibling := filepath.Join(dir, "other.hcl")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(sibling, []byte("x"), 0o644))

	onChange := start(t, target)

	require.NoError(t, os.WriteFile(sibling, []byte("y"), 0o644))
	select {
	case <-onChange:
		t.Fatal("unexpected notification for sibling file")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(target, []byte("y"), 0o644))
	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification for watched file")
	}
}

func TestWatcher_MissingPath(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig([]string{filepath.Join(t.TempDir(), "missing")}, []string{".hcl"}))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start(testContext(t))
	require.Error(t, err)
}
