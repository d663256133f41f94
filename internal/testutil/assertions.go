package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/componentid"
)

// RequireChain looks up a chain of a successful run by its id.
func RequireChain(t *testing.T, result *HarnessResult, chainID string) *chain.Chain[*catalog.Instance] {
	t.Helper()
	require.NoError(t, result.Err, "build failed")
	require.NotNil(t, result.Generation)

	c, ok := result.Generation.Chains.Get(componentid.MustParseID(chainID))
	require.True(t, ok, "chain '%s' was not published", chainID)
	return c
}

// AssertChainOrder checks the exact component order of a published chain.
func AssertChainOrder(t *testing.T, result *HarnessResult, chainID string, want ...string) {
	t.Helper()
	c := RequireChain(t, result, chainID)

	got := make([]string, 0, c.Len())
	for _, id := range c.ComponentIDs() {
		got = append(got, id.String())
	}
	if want == nil {
		want = []string{}
	}
	require.Equal(t, want, got, "unexpected order for chain '%s'", chainID)
}

// AssertChainPhases checks the phases recorded on a published chain.
func AssertChainPhases(t *testing.T, result *HarnessResult, chainID string, want ...string) {
	t.Helper()
	c := RequireChain(t, result, chainID)
	require.ElementsMatch(t, want, c.Phases(), "unexpected phases for chain '%s'", chainID)
}

// AssertBuildFailed checks the run failed with every fragment in its message.
func AssertBuildFailed(t *testing.T, result *HarnessResult, fragments ...string) {
	t.Helper()
	require.Error(t, result.Err, "expected the build to fail")
	require.Nil(t, result.Generation)
	for _, f := range fragments {
		require.True(t, strings.Contains(result.Err.Error(), f),
			"expected error to contain %q, got: %v", f, result.Err)
	}
}
