package attribution

import (
	"testing"

	"liverRisk/internal/modeltest"
	"liverRisk/pkg/mlmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gbdtMember(trees ...mlmodel.Tree) *mlmodel.Estimator {
	return &mlmodel.Estimator{Name: "xgb", Kind: mlmodel.KindGBDT, Trees: trees}
}

func TestTreeBackend_Stump(t *testing.T) {
	est := gbdtMember(modeltest.Stump(0, 0.5, 10, []float64{-0.8}, 6, []float64{1.2}, 4))
	b, err := newTreeBackend(est, 2)
	require.NoError(t, err)

	expected, err := b.ExpectedValue().Value(DiseaseClass)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, expected, 1e-12)

	values, err := b.ShapValues([][]float64{{0.2, 9}})
	require.NoError(t, err)
	row, err := values.Row(DiseaseClass)
	require.NoError(t, err)

	// the split feature receives leaf - E, the unused feature nothing
	assert.InDelta(t, -0.8, row[0], 1e-12)
	assert.InDelta(t, 0.0, row[1], 1e-12)
}

// depth two, with feature 0 split on twice along the right branch
func deepTree() mlmodel.Tree {
	return mlmodel.Tree{Nodes: []mlmodel.Node{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2, Cover: 100},
		{Feature: 1, Threshold: 0.3, Left: 3, Right: 4, Cover: 40},
		{Feature: 0, Threshold: 0.8, Left: 5, Right: 6, Cover: 60},
		{Leaf: true, Value: []float64{-1.0}, Cover: 25},
		{Leaf: true, Value: []float64{0.4}, Cover: 15},
		{Leaf: true, Value: []float64{0.7}, Cover: 35},
		{Leaf: true, Value: []float64{2.1}, Cover: 25},
	}}
}

func TestTreeBackend_Additivity(t *testing.T) {
	est := gbdtMember(deepTree(), modeltest.Stump(2, 0.1, 50, []float64{0.3}, 20, []float64{-0.6}, 30))
	est.BaseMargin = -0.25
	b, err := newTreeBackend(est, 3)
	require.NoError(t, err)

	base, err := b.ExpectedValue().Value(DiseaseClass)
	require.NoError(t, err)

	for _, x := range [][]float64{
		{0.1, 0.1, 0.0},
		{0.1, 0.9, 0.5},
		{0.6, 0.1, 0.05},
		{0.9, 0.9, 0.9},
	} {
		values, err := b.ShapValues([][]float64{x})
		require.NoError(t, err)
		row, err := values.Row(DiseaseClass)
		require.NoError(t, err)

		margin, err := est.Margin(x)
		require.NoError(t, err)

		sum := base
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, margin, sum, 1e-9, "x=%v", x)
	}
}

func TestTreeBackend_ForestPerClass(t *testing.T) {
	est := &mlmodel.Estimator{
		Name: "rf",
		Kind: mlmodel.KindForest,
		Trees: []mlmodel.Tree{
			modeltest.Stump(0, 0.5, 10, []float64{0.8, 0.2}, 5, []float64{0.2, 0.8}, 5),
			modeltest.Stump(1, 0.5, 10, []float64{0.6, 0.4}, 5, []float64{0.4, 0.6}, 5),
		},
	}
	b, err := newTreeBackend(est, 2)
	require.NoError(t, err)

	values, err := b.ShapValues([][]float64{{0.9, 0.1}})
	require.NoError(t, err)
	assert.Equal(t, ShapePerClass, values.Shape)

	base := b.ExpectedValue()
	assert.Equal(t, BasePerClass, base.Shape)

	x := []float64{0.9, 0.1}
	p, err := est.PredictProba(x)
	require.NoError(t, err)

	for class := 0; class < 2; class++ {
		row, err := values.Row(class)
		require.NoError(t, err)
		e, err := base.Value(class)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, e, 1e-12)
		assert.InDelta(t, p[class], e+row[0]+row[1], 1e-12)
	}

	row, err := values.Row(DiseaseClass)
	require.NoError(t, err)
	assert.InDelta(t, 0.15, row[0], 1e-12)
	assert.InDelta(t, -0.05, row[1], 1e-12)
}

func TestTreeBackend_Rejects(t *testing.T) {
	_, err := newTreeBackend(&mlmodel.Estimator{Name: "lr", Kind: mlmodel.KindLogistic}, 2)
	assert.Error(t, err)

	noCover := modeltest.Stump(0, 0.5, 0, []float64{0}, 0, []float64{1}, 0)
	_, err = newTreeBackend(gbdtMember(noCover), 2)
	assert.Error(t, err)

	_, err = newTreeBackend(gbdtMember(modeltest.Stump(4, 0.5, 2, []float64{0}, 1, []float64{1}, 1)), 2)
	assert.Error(t, err)

	b, err := newTreeBackend(gbdtMember(modeltest.Stump(0, 0.5, 2, []float64{0}, 1, []float64{1}, 1)), 2)
	require.NoError(t, err)
	_, err = b.ShapValues([][]float64{{1}})
	assert.ErrorIs(t, err, mlmodel.ErrDimension)
}
