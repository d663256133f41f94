package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationError(t *testing.T) {
	cause := &CycleError{Nodes: []string{"'X'", "'Y'"}}

	err := WrapConfiguration("main", cause)
	assert.Equal(t, "chain 'main': the dependencies form a cycle, unresolved nodes: 'X', 'Y'", err.Error())

	var cycle *CycleError
	require.True(t, As(err, &cycle))
	assert.Equal(t, []string{"'X'", "'Y'"}, cycle.Nodes)

	assert.Same(t, err, WrapConfiguration("main", err), "already wrapped for the same chain")
	assert.Nil(t, WrapConfiguration("main", nil))

	plain := NewConfigurationError("", "No such component '%s'", "ghost")
	assert.Equal(t, "No such component 'ghost'", plain.Error())
}

func TestMultiError(t *testing.T) {
	var errs *MultiError
	assert.NoError(t, errs.ErrorOrNil())
	assert.Equal(t, 0, errs.Len())

	errs = errs.Append(nil)
	assert.NoError(t, errs.ErrorOrNil(), "nil errors are dropped")

	first := stderrors.New("first")
	errs = errs.Append(first)
	assert.Equal(t, "first", errs.ErrorOrNil().Error())

	errs = errs.Append(stderrors.New("second\nline"))
	assert.Equal(t, "2 errors occurred:\n- first\n- second\n  line", errs.Error())
	assert.True(t, Is(errs, first))
}

func TestRecover(t *testing.T) {
	var got error
	func() {
		defer Recover(func(cause error) { got = cause })
		panic("boom")
	}()

	require.Error(t, got)
	assert.Equal(t, "boom", got.Error())
	assert.Contains(t, ErrorWithStackTrace(got), "errors_test.go")
}
