package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRegisteredName(t *testing.T) {
	r, err := NewResolver(map[string]string{
		"examples": "examples.json",
	})
	require.NoError(t, err)

	locator, err := r.Resolve("examples")
	assert.NoError(t, err)
	assert.Equal(t, "examples.json", locator)
}

func TestResolveUnknownName(t *testing.T) {
	r, err := NewResolver(nil)
	require.NoError(t, err)

	_, err = r.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnknownPath)
}

func TestRegisterThenResolve(t *testing.T) {
	r, err := NewResolver(nil)
	require.NoError(t, err)

	r.Register("data", "/var/data")
	locator, err := r.Resolve("data")
	assert.NoError(t, err)
	assert.Equal(t, "/var/data", locator)
}

func TestPathEntriesReferenceEachOther(t *testing.T) {
	r, err := NewResolver(map[string]string{
		"root":     "/srv/corpus",
		"examples": "${paths.root}/examples.json",
	})
	require.NoError(t, err)

	locator, err := r.Resolve("examples")
	assert.NoError(t, err)
	assert.Equal(t, "/srv/corpus/examples.json", locator)
}

func TestCyclicReference(t *testing.T) {
	_, err := NewResolver(map[string]string{
		"a": "${paths.b}",
		"b": "${paths.a}",
	})
	assert.ErrorIs(t, err, ErrCyclicReference)
}

func TestSelfReference(t *testing.T) {
	_, err := NewResolver(map[string]string{
		"a": "prefix-${paths.a}",
	})
	assert.ErrorIs(t, err, ErrCyclicReference)
}

func TestReferenceToMissingName(t *testing.T) {
	_, err := NewResolver(map[string]string{
		"examples": "${paths.root}/examples.json",
	})
	assert.ErrorIs(t, err, ErrUnknownPath)
}

func TestInterpolate(t *testing.T) {
	r, err := NewResolver(map[string]string{
		"examples": "examples.json",
	})
	require.NoError(t, err)

	out, err := r.Interpolate("${paths.examples}")
	assert.NoError(t, err)
	assert.Equal(t, "examples.json", out)

	// Strings without references pass through untouched.
	out, err = r.Interpolate("plain value")
	assert.NoError(t, err)
	assert.Equal(t, "plain value", out)
}

func TestInterpolateUnknownReference(t *testing.T) {
	r, err := NewResolver(nil)
	require.NoError(t, err)

	_, err = r.Interpolate("${paths.missing}")
	assert.ErrorIs(t, err, ErrUnknownPath)
}

func TestInterpolateIsSinglePass(t *testing.T) {
	// A resolved value containing placeholder syntax is taken literally.
	r, err := NewResolver(nil)
	require.NoError(t, err)
	r.Register("odd", "${paths.other}")
	r.Register("other", "never")

	out, err := r.Interpolate("${paths.odd}")
	assert.NoError(t, err)
	assert.Equal(t, "${paths.other}", out)
}

func TestInterpolateTree(t *testing.T) {
	r, err := NewResolver(map[string]string{
		"examples": "examples.json",
	})
	require.NoError(t, err)

	tree := map[string]any{
		"components": map[string]any{
			"ner": map[string]any{
				"examples": "${paths.examples}",
				"labels":   []any{"DRUG", "DISEASE"},
				"batch":    int64(4),
			},
		},
	}

	out, err := r.InterpolateTree(tree)
	require.NoError(t, err)

	ner := out["components"].(map[string]any)["ner"].(map[string]any)
	assert.Equal(t, "examples.json", ner["examples"])
	assert.Equal(t, []any{"DRUG", "DISEASE"}, ner["labels"])
	assert.Equal(t, int64(4), ner["batch"])

	// Input tree is untouched.
	orig := tree["components"].(map[string]any)["ner"].(map[string]any)
	assert.Equal(t, "${paths.examples}", orig["examples"])
}
