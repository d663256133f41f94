package integration_tests

import (
	"testing"

	"github.com/vk/chainforge/internal/testutil"
)

const orderedComponents = `
component "A" {}

component "B" {
  after = ["A"]
}

component "C" {
  after = ["B"]
}
`

// Test for: inheritance with exclusion
func TestHclFeatures_InheritanceWithExclusion(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"components.hcl": orderedComponents,
		"chains.hcl": `
chain "chain1" {
  components = ["A", "B"]
}

chain "inheritsChain1" {
  inherits = ["chain1"]
  excludes = ["A"]
}
`,
	}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "chain1", "A", "B")
	testutil.AssertChainOrder(t, result, "inheritsChain1", "B")
	// B still asks to run after A; with A gone that name is only a phase.
	testutil.AssertChainPhases(t, result, "inheritsChain1", "A")
}

// Test for: exclusion stays local to the declaring chain
func TestHclFeatures_ExclusionDoesNotPropagate(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"components.hcl": orderedComponents,
		"chains.hcl": `
chain "base" {
  components = ["A", "B"]
}

chain "trimmed" {
  inherits = ["base"]
  excludes = ["A"]
}

chain "restored" {
  components = ["A"]
  inherits   = ["trimmed"]
}
`,
	}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "trimmed", "B")
	testutil.AssertChainOrder(t, result, "restored", "A", "B")
}

// Test for: multi-level diamond inheritance
func TestHclFeatures_DiamondInheritance(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"components.hcl": orderedComponents,
		"chains.hcl": `
chain "base" {
  components = ["A"]
}

chain "left" {
  components = ["B"]
  inherits   = ["base"]
}

chain "right" {
  components = ["C"]
  inherits   = ["base"]
}

chain "diamond" {
  inherits = ["left", "right"]
}
`,
	}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "diamond", "A", "B", "C")
	// Own references come first; C only waits on the phase B.
	testutil.AssertChainOrder(t, result, "right", "C", "A")
	testutil.AssertChainPhases(t, result, "right", "B")
}

// Test for: versioned references pick the highest match
func TestHclFeatures_VersionedReferences(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"components.hcl": `
component "auth:1.2" {}
component "auth:1.4" {}
component "auth:2.5" {}
`,
		"chains.hcl": `
chain "pinned" {
  components = ["auth:1"]
}

chain "latest" {
  components = ["auth"]
}
`,
	}

	// --- Act ---
	result := testutil.RunBuildTest(t, files, testutil.Options{})

	// --- Assert ---
	testutil.AssertChainOrder(t, result, "pinned", "auth:1.4")
	testutil.AssertChainOrder(t, result, "latest", "auth:2.5")
}
