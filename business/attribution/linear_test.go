package attribution

import (
	"testing"

	"liverRisk/internal/modeltest"
	"liverRisk/pkg/mlmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearBackend(t *testing.T) {
	stack := modeltest.Bundle().Model
	b, err := newLinearBackend(stack, 6)
	require.NoError(t, err)

	base, err := b.ExpectedValue().Value(DiseaseClass)
	require.NoError(t, err)
	assert.Equal(t, -3.0, base)

	x := []float64{0.4, 0.1, 0.2, 0.3, 0.5, 0.6}
	values, err := b.ShapValues([][]float64{x})
	require.NoError(t, err)
	row, err := values.Row(DiseaseClass)
	require.NoError(t, err)

	// passthrough coefficients are all 0.5
	require.Len(t, row, 6)
	for j := range x {
		assert.InDelta(t, 0.5*x[j], row[j], 1e-12)
	}
}

func TestLinearBackend_Rejects(t *testing.T) {
	stack := modeltest.Bundle().Model
	stack.Passthrough = false
	_, err := newLinearBackend(stack, 6)
	assert.Error(t, err)

	stack = modeltest.Bundle().Model
	_, err = newLinearBackend(stack, 5)
	assert.ErrorIs(t, err, mlmodel.ErrDimension)

	stack = modeltest.Bundle().Model
	stack.FinalEstimator = nil
	_, err = newLinearBackend(stack, 6)
	assert.Error(t, err)
}
