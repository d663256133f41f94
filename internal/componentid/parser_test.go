package componentid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	testCases := []struct {
		name       string
		raw        string
		expectErr  bool
		expectedID ID
	}{
		{
			name:       "bare name",
			raw:        "stemmer",
			expectedID: ID{Name: "stemmer"},
		},
		{
			name:       "dotted class name with full version",
			raw:        "com.example.Rank:1.2.3",
			expectedID: ID{Name: "com.example.Rank", Version: NewVersion(1, 2, 3)},
		},
		{
			name:       "qualifier",
			raw:        "rank:2.0.0.beta",
			expectedID: ID{Name: "rank", Version: Version{Major: 2, Qualifier: "beta"}},
		},
		{
			name: "nested namespace",
			raw:  "inner:1@outer:2@root",
			expectedID: ID{
				Name:    "inner",
				Version: NewVersion(1, 0, 0),
				Namespace: &ID{
					Name:      "outer",
					Version:   NewVersion(2, 0, 0),
					Namespace: &ID{Name: "root"},
				},
			},
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - empty version",
			raw:       "rank:",
			expectErr: true,
		},
		{
			name:      "error - empty namespace",
			raw:       "rank@",
			expectErr: true,
		},
		{
			name:      "error - non numeric version",
			raw:       "rank:x",
			expectErr: true,
		},
		{
			name:      "error - leading zero",
			raw:       "rank:01",
			expectErr: true,
		},
		{
			name:      "error - invalid name",
			raw:       "ra nk",
			expectErr: true,
		},
		{
			name:      "error - just a dot",
			raw:       ".",
			expectErr: true,
		},
		{
			name:      "error - empty qualifier",
			raw:       "rank:1.2.3.",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseID(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expectedID.Equal(id), "parsed %s, expected %s", id, tc.expectedID)
			assert.Equal(t, tc.raw, id.String(), "canonical form should round trip")
		})
	}
}

func TestParseSpecification(t *testing.T) {
	spec, err := ParseSpecification("rank")
	require.NoError(t, err)
	assert.Nil(t, spec.Version)
	assert.Nil(t, spec.Namespace)

	spec, err = ParseSpecification("rank:1.1@chain")
	require.NoError(t, err)
	require.NotNil(t, spec.Version)
	assert.Equal(t, NewVersion(1, 1, 0), *spec.Version)
	require.NotNil(t, spec.Namespace)
	assert.Equal(t, "chain", spec.Namespace.Name)
	assert.Equal(t, "rank:1.1@chain", spec.String())

	_, err = ParseSpecification("rank:1.a")
	assert.Error(t, err)
}

func TestVersionCompare(t *testing.T) {
	ordered := []string{"", "0.0.0.a", "1", "1.0.0.alpha", "1.0.0.beta", "1.0.1", "1.1", "2"}
	for i := 0; i < len(ordered)-1; i++ {
		lo, err := ParseVersion(ordered[i])
		require.NoError(t, err)
		hi, err := ParseVersion(ordered[i+1])
		require.NoError(t, err)

		assert.Equal(t, -1, lo.Compare(hi), "%q < %q", ordered[i], ordered[i+1])
		assert.Equal(t, 1, hi.Compare(lo), "%q > %q", ordered[i+1], ordered[i])
		assert.Equal(t, 0, lo.Compare(lo))
	}
}

func TestIDCompare(t *testing.T) {
	plain := MustParseID("a:1")
	namespaced := MustParseID("a:1@chain")

	assert.Equal(t, -1, plain.Compare(namespaced), "no namespace sorts first")
	assert.Equal(t, -1, MustParseID("a:2").Compare(MustParseID("b:1")), "name dominates version")
	assert.True(t, namespaced.Equal(MustParseID("a:1@chain")))
}
