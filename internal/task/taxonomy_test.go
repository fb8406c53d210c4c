package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxonomy(t *testing.T) {
	tax, err := NewTaxonomy([]Label{
		{Name: "DRUG", Definition: "a medication"},
		{Name: "DISEASE"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, tax.Len())
	assert.True(t, tax.Has("DRUG"))
	assert.True(t, tax.Has("DISEASE"))
	assert.False(t, tax.Has("GENE"))
}

func TestEmptyTaxonomy(t *testing.T) {
	_, err := NewTaxonomy(nil)
	assert.ErrorIs(t, err, ErrEmptyTaxonomy)
}

func TestDuplicateLabel(t *testing.T) {
	_, err := NewTaxonomy([]Label{
		{Name: "DRUG"},
		{Name: "DRUG"},
	})
	assert.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestEmptyLabelName(t *testing.T) {
	_, err := NewTaxonomy([]Label{{Name: ""}})
	assert.Error(t, err)
}

func TestFromNamesKeepsDeclarationOrder(t *testing.T) {
	tax, err := FromNames([]string{"B", "A", "C"}, map[string]string{"A": "first letter"})
	require.NoError(t, err)

	labels := tax.Labels()
	assert.Equal(t, "B", labels[0].Name)
	assert.Equal(t, "A", labels[1].Name)
	assert.Equal(t, "C", labels[2].Name)
	assert.Equal(t, "first letter", labels[1].Definition)
	assert.Empty(t, labels[0].Definition)
}
