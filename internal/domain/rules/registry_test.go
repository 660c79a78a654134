package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	assert.Equal(t, []string{
		"bool-literal-compare",
		"deprecated-ioutil",
		"errorf-without-format",
		"redundant-nil-len-check",
		"self-assignment",
	}, reg.Keys())

	rule, err := reg.Lookup("self-assignment")
	require.NoError(t, err)
	assert.Equal(t, "self-assignment", rule.Key())

	infos := reg.Infos()
	require.Len(t, infos, 5)
	assert.Equal(t, "bool-literal-compare", infos[0].Key)
	assert.NotEmpty(t, infos[0].Description)
}

// countingRule records how many instances its factory created.
type countingRule struct {
	SelfAssignment

	id int
}

func (*countingRule) Key() string { return "counting" }

func TestRegistry_LookupCallsFactory(t *testing.T) {
	created := 0

	reg := NewRegistry()
	reg.Register(func() Rule {
		created++
		return &countingRule{id: created}
	})
	require.Equal(t, 1, created)

	first, err := reg.Lookup("counting")
	require.NoError(t, err)

	second, err := reg.Lookup("counting")
	require.NoError(t, err)

	assert.Equal(t, 3, created)
	assert.Equal(t, 2, first.(*countingRule).id)
	assert.Equal(t, 3, second.(*countingRule).id)
	assert.NotSame(t, first, second)
}

func TestRegistry_Unknown(t *testing.T) {
	reg := Default()

	_, err := reg.Lookup("no-such-rule")
	assert.True(t, errors.Is(err, ErrUnknownRule))

	_, err = reg.Resolve([]string{"self-assignment", "no-such-rule"})
	assert.ErrorContains(t, err, `"no-such-rule"`)

	resolved, err := reg.Resolve([]string{"self-assignment", "bool-literal-compare"})
	require.NoError(t, err)
	assert.Equal(t, "bool-literal-compare", resolved[1].Key())
}
