package integration_tests

import (
	"testing"

	"github.com/vk/chainforge/internal/testutil"
)

// Test for: declared phases order components around them
func TestHclFeatures_DeclaredPhases(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
component "auth" {
  after = ["init"]
}

component "log" {
  before = ["init"]
}

chain "main" {
  components = ["auth", "log"]

  phase "init" {}
}
`,
	}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "main", "log", "auth")
	testutil.AssertChainPhases(t, result, "main", "init")
}

// Test for: provided names order every provider before dependents
func TestHclFeatures_ProvidedNames(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
component "server" {
  after = ["storage"]
}

component "cache" {
  provides = ["storage"]
}

component "disk" {
  provides = ["storage"]
}

chain "main" {
  components = ["server", "cache", "disk"]
}
`,
	}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "main", "cache", "disk", "server")
	testutil.AssertChainPhases(t, result, "main")
}

// Test for: inner components declared in yaml next to hcl components
func TestHclFeatures_InnerComponentsAcrossFormats(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"components.hcl": `
component "auth" {
  config = {
    realm = "internal"
  }
}
`,
		"chains/main.yaml": `
chains:
  - id: main
    components: [auth]
    inner:
      - id: audit
        after: [auth]
  - id: other
    components: [auth]
    inner:
      - id: audit
        before: [auth]
`,
	}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "main", "auth", "audit@main")
	testutil.AssertChainOrder(t, result, "other", "audit@other", "auth")

	auth := testutil.RequireChain(t, result, "main").Components()[0]
	if auth.Config["realm"] != "internal" {
		t.Errorf("expected auth config to carry realm, got %v", auth.Config)
	}
}
