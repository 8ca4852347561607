package mlmodel

import (
	"fmt"
	"math"
	"sort"
)

// Selector is the importance source used to pick the top-K feature subset.
// It takes no part in the prediction itself.
type Selector struct {
	FeatureImportances []float64 `yaml:"feature_importances"`
}

// SelectTopK returns the indices of the k largest importances, in ascending
// index order. The ranking sort is stable on (importance, index) so equal
// importances always resolve the same way.
func SelectTopK(importances []float64, k int) ([]int, error) {
	if k <= 0 || k > len(importances) {
		return nil, fmt.Errorf("cannot select %d of %d features", k, len(importances))
	}
	for i, v := range importances {
		if math.IsNaN(v) || v < 0 {
			return nil, fmt.Errorf("importance %d is %v, want a non-negative number", i, v)
		}
	}

	order := make([]int, len(importances))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return importances[order[a]] < importances[order[b]]
	})

	top := append([]int(nil), order[len(order)-k:]...)
	sort.Ints(top)
	return top, nil
}

// Project picks the columns idx out of x.
func Project(x []float64, idx []int) ([]float64, error) {
	out := make([]float64, len(idx))
	for i, j := range idx {
		if j < 0 || j >= len(x) {
			return nil, fmt.Errorf("feature index %d out of range for width %d: %w", j, len(x), ErrDimension)
		}
		out[i] = x[j]
	}
	return out, nil
}
