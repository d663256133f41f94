package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/vk/chainforge/internal/app"
	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/generation"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput  string
	Err        error
	App        *app.App
	Generation *generation.Generation[*catalog.Instance]
}

// Options tweak the app built by the harness. The zero value uses the
// default exclusion policy and the core modules.
type Options struct {
	ExclusionPolicy string
	Modules         []catalog.Module
}

// RunBuildTest provides a standardized harness for integration tests: it
// writes files (keyed by relative path) into a temp dir, loads the whole dir
// and builds one generation.
func RunBuildTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunBuildTestWithContext(context.Background(), t, files, opts)
}

// RunBuildTestWithContext is RunBuildTest with a caller-provided context.
func RunBuildTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	root := app.WriteConfigTree(t, files)
	testApp, logBuffer := app.SetupAppTest(t, app.Config{
		ConfigPaths:     []string{root},
		ExclusionPolicy: opts.ExclusionPolicy,
	}, opts.Modules...)

	gen, err := testApp.Build(ctx)

	if os.Getenv("CHAINFORGE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput:  logBuffer.String(),
		Err:        err,
		App:        testApp,
		Generation: gen,
	}
}
