package env_vars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/chainforge/internal/componentid"
)

func TestNew(t *testing.T) {
	t.Setenv("CHAINFORGE_TEST_HOST", "db.local")

	inst, err := New(context.Background(), componentid.MustParseID("db"), map[string]string{
		"url":      "postgres://${CHAINFORGE_TEST_HOST}/main",
		"required": "CHAINFORGE_TEST_HOST",
	})
	require.NoError(t, err)
	assert.Equal(t, Class, inst.Class)
	assert.Equal(t, map[string]string{"url": "postgres://db.local/main"}, inst.Config)
}

func TestNew_MissingRequired(t *testing.T) {
	_, err := New(context.Background(), componentid.MustParseID("db"), map[string]string{
		"required": "CHAINFORGE_TEST_UNSET_1, CHAINFORGE_TEST_UNSET_2",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAINFORGE_TEST_UNSET_1, CHAINFORGE_TEST_UNSET_2")
}
