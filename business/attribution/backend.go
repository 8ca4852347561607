package attribution

// ValueBackend is the older calling convention: attributions come back as a
// bare array and the expected value is read separately.
type ValueBackend interface {
	ShapValues(x [][]float64) (Values, error)
	ExpectedValue() BaseValue
}

// Explanation is what an ObjectBackend returns for a batch.
type Explanation struct {
	Values     Values
	BaseValues BaseValue
}

// ObjectBackend is the newer calling convention: one call returns values and
// base values together.
type ObjectBackend interface {
	Explain(x [][]float64) (*Explanation, error)
}

// run invokes whichever convention backend implements and reduces the result
// to one attribution row and one baseline for class.
func run(backend any, x []float64, class int) ([]float64, float64, error) {
	var (
		values Values
		base   BaseValue
	)
	switch b := backend.(type) {
	case ObjectBackend:
		exp, err := b.Explain([][]float64{x})
		if err != nil {
			return nil, 0, err
		}
		values, base = exp.Values, exp.BaseValues
	case ValueBackend:
		v, err := b.ShapValues([][]float64{x})
		if err != nil {
			return nil, 0, err
		}
		values, base = v, b.ExpectedValue()
	default:
		return nil, 0, ErrUnsupportedShape
	}

	row, err := values.Row(class)
	if err != nil {
		return nil, 0, err
	}
	baseline, err := base.Value(class)
	if err != nil {
		return nil, 0, err
	}
	return row, baseline, nil
}
