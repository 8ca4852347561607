package attribution

import (
	"fmt"

	"liverRisk/pkg/mlmodel"
)

// linearBackend explains the stack's meta-learner against an all-zero
// background, so each attribution is coef_j * z_j and the expected value is
// the intercept. Only the passthrough block of the meta-features maps back
// to the selected inputs, so that block is what gets reported.
type linearBackend struct {
	stack  *mlmodel.Stack
	width  int
	offset int
}

func newLinearBackend(stack *mlmodel.Stack, width int) (*linearBackend, error) {
	if stack.FinalEstimator == nil {
		return nil, fmt.Errorf("stack has no meta-learner")
	}
	if !stack.Passthrough {
		return nil, fmt.Errorf("meta-learner sees no passthrough features")
	}
	background := make([]float64, stack.MetaWidth(width))
	if len(stack.FinalEstimator.Coef) != len(background) {
		return nil, fmt.Errorf("meta-learner has %d coefficients, background has %d columns: %w",
			len(stack.FinalEstimator.Coef), len(background), mlmodel.ErrDimension)
	}
	return &linearBackend{stack: stack, width: width, offset: len(background) - width}, nil
}

func (b *linearBackend) ExpectedValue() BaseValue {
	return ScalarBase(b.stack.FinalEstimator.Intercept)
}

func (b *linearBackend) ShapValues(x [][]float64) (Values, error) {
	coef := b.stack.FinalEstimator.Coef
	rows := make([][]float64, len(x))
	for s, row := range x {
		if len(row) != b.width {
			return Values{}, fmt.Errorf("sample %d has %d features, want %d: %w", s, len(row), b.width, mlmodel.ErrDimension)
		}
		z, err := b.stack.MetaFeatures(row)
		if err != nil {
			return Values{}, err
		}
		out := make([]float64, b.width)
		for j := range out {
			out[j] = coef[b.offset+j] * z[b.offset+j]
		}
		rows[s] = out
	}
	return SingleValues(rows), nil
}
