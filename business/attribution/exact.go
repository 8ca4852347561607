package attribution

import (
	"fmt"
	"math/bits"

	"liverRisk/pkg/mlmodel"
)

// maxBackgroundRows caps the independent masker's reference sample.
const maxBackgroundRows = 100

// maxExactFeatures bounds the 2^M coalition enumeration.
const maxExactFeatures = 12

// probaFunc is a model's probability function for one sample.
type probaFunc func(x []float64) ([]float64, error)

// exactBackend wraps a probability function with an independent masker:
// features outside a coalition take their values from background rows, and
// a coalition's value is the mean output over those rows. Shapley values are
// computed exactly by enumerating every coalition.
type exactBackend struct {
	f          probaFunc
	background [][]float64
	width      int
	classes    int
}

func newExactBackend(f probaFunc, background [][]float64, width, classes int) (*exactBackend, error) {
	if len(background) == 0 {
		return nil, fmt.Errorf("independent masker needs background data")
	}
	if width > maxExactFeatures {
		return nil, fmt.Errorf("exact enumeration over %d features is too large", width)
	}
	if len(background) > maxBackgroundRows {
		background = background[:maxBackgroundRows]
	}
	for i, row := range background {
		if len(row) != width {
			return nil, fmt.Errorf("background row %d has %d features, masker expects %d: %w", i, len(row), width, mlmodel.ErrDimension)
		}
	}
	return &exactBackend{f: f, background: background, width: width, classes: classes}, nil
}

func (b *exactBackend) Explain(x [][]float64) (*Explanation, error) {
	values := make([][][]float64, len(x))
	base := make([][]float64, len(x))
	for s, row := range x {
		if len(row) != b.width {
			return nil, fmt.Errorf("sample %d has %d features, want %d: %w", s, len(row), b.width, mlmodel.ErrDimension)
		}
		phi, v0, err := b.explainOne(row)
		if err != nil {
			return nil, err
		}
		values[s] = phi
		base[s] = v0
	}
	return &Explanation{Values: StackedValues(values), BaseValues: PerSampleBase(base)}, nil
}

// explainOne returns phi[feature][class] and the empty-coalition value.
func (b *exactBackend) explainOne(x []float64) ([][]float64, []float64, error) {
	m := b.width
	n := 1 << m

	coalition := make([][]float64, n)
	masked := make([]float64, m)
	for mask := 0; mask < n; mask++ {
		mean := make([]float64, b.classes)
		for _, bg := range b.background {
			for j := 0; j < m; j++ {
				if mask&(1<<j) != 0 {
					masked[j] = x[j]
				} else {
					masked[j] = bg[j]
				}
			}
			p, err := b.f(masked)
			if err != nil {
				return nil, nil, err
			}
			for k := 0; k < b.classes; k++ {
				mean[k] += p[k]
			}
		}
		for k := range mean {
			mean[k] /= float64(len(b.background))
		}
		coalition[mask] = mean
	}

	weights := shapleyWeights(m)
	phi := make([][]float64, m)
	for j := 0; j < m; j++ {
		phi[j] = make([]float64, b.classes)
		bit := 1 << j
		for mask := 0; mask < n; mask++ {
			if mask&bit != 0 {
				continue
			}
			w := weights[bits.OnesCount(uint(mask))]
			with, without := coalition[mask|bit], coalition[mask]
			for k := 0; k < b.classes; k++ {
				phi[j][k] += w * (with[k] - without[k])
			}
		}
	}
	return phi, coalition[0], nil
}

// shapleyWeights[s] = s! (m-s-1)! / m! for a coalition of size s.
func shapleyWeights(m int) []float64 {
	w := make([]float64, m)
	for s := 0; s < m; s++ {
		// 1 / (m * C(m-1, s))
		c := 1.0
		for i := 1; i <= s; i++ {
			c = c * float64(m-1-s+i) / float64(i)
		}
		w[s] = 1 / (float64(m) * c)
	}
	return w
}
