package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/testutil"
	"github.com/vk/chainforge/modules/env_vars"
	"github.com/vk/chainforge/modules/generic"
)

// Test for: every declared component is built by its class factory
func TestModuleContract_FactoriesBuildEveryComponent(t *testing.T) {
	// --- Arrange ---
	recorder := &testutil.RecordingModule{}
	files := map[string]string{"main.hcl": `
component "A" {
  class = "recording"
}

component "B" {
  after = ["A"]
}

chain "main" {
  components = ["B", "A"]

  component "local" {
    class = "recording"
    after = ["B"]
  }
}
`}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{
		Modules: []catalog.Module{&generic.Module{}, recorder},
	})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "main", "A", "B", "local@main")
	assert.ElementsMatch(t, []string{"A", "local@main"}, recorder.Built())

	classes := map[string]string{}
	for _, inst := range testutil.RequireChain(t, result, "main").Components() {
		classes[inst.ID().String()] = inst.Class
	}
	assert.Equal(t, map[string]string{
		"A":          testutil.RecordingClass,
		"B":          catalog.DefaultClass,
		"local@main": testutil.RecordingClass,
	}, classes)
}

// Test for: a failing factory fails the whole build
func TestModuleContract_FactoryFailureFailsBuild(t *testing.T) {
	// --- Arrange ---
	recorder := &testutil.RecordingModule{}
	files := map[string]string{"main.hcl": `
component "good" {
  class = "recording"
}

component "bad" {
  class  = "recording"
  config = {
    fail = true
  }
}

chain "main" {
  components = ["good"]
}
`}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{
		Modules: []catalog.Module{recorder},
	})

	// --- Assert ---
	testutil.AssertBuildFailed(t, result, "recording component 'bad' asked to fail")
	require.Nil(t, result.App.Current())
}

// Test for: env_vars components expand their config from the environment
func TestModuleContract_EnvVarsExpansion(t *testing.T) {
	// --- Arrange ---
	t.Setenv("CHAINFORGE_IT_ENDPOINT", "https://search.internal")
	files := map[string]string{"main.yaml": `
components:
  - id: backend
    class: env_vars
    config:
      required: CHAINFORGE_IT_ENDPOINT
      url: ${CHAINFORGE_IT_ENDPOINT}/v1
chains:
  - id: main
    components: [backend]
`}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{
		Modules: []catalog.Module{&env_vars.Module{}},
	})

	// --- Assert ---
	backend := testutil.RequireChain(t, result, "main").Components()[0]
	assert.Equal(t, map[string]string{"url": "https://search.internal/v1"}, backend.Config)
}
