package attribution

import (
	"errors"
	"fmt"
)

// DiseaseClass is the class whose attributions are reported. Every bundle
// we serve encodes "disease present" as label 1.
const DiseaseClass = 1

// ErrUnsupportedShape is returned when backend output cannot be reduced to
// one attribution row.
var ErrUnsupportedShape = errors.New("unsupported attribution output shape")

// Shape tags which layout a backend used for its attribution values.
type Shape int

const (
	// ShapeSingle is [sample][feature]; the output already is the positive class.
	ShapeSingle Shape = iota
	// ShapePerClass is [class][sample][feature].
	ShapePerClass
	// ShapeStacked is [sample][feature][class].
	ShapeStacked
)

type Values struct {
	Shape Shape
	Data  [][][]float64
	Rows  [][]float64
}

// SingleValues wraps a [sample][feature] array.
func SingleValues(rows [][]float64) Values {
	return Values{Shape: ShapeSingle, Rows: rows}
}

// PerClassValues wraps a [class][sample][feature] list.
func PerClassValues(data [][][]float64) Values {
	return Values{Shape: ShapePerClass, Data: data}
}

// StackedValues wraps a [sample][feature][class] array.
func StackedValues(data [][][]float64) Values {
	return Values{Shape: ShapeStacked, Data: data}
}

// BaseShape tags the layout of an expected value.
type BaseShape int

const (
	BaseScalar BaseShape = iota
	BasePerClass
	BasePerSample
)

type BaseValue struct {
	Shape     BaseShape
	Scalar    float64
	PerClass  []float64
	PerSample [][]float64
}

func ScalarBase(v float64) BaseValue { return BaseValue{Shape: BaseScalar, Scalar: v} }

func PerClassBase(v []float64) BaseValue { return BaseValue{Shape: BasePerClass, PerClass: v} }

func PerSampleBase(v [][]float64) BaseValue { return BaseValue{Shape: BasePerSample, PerSample: v} }

// Row reduces v to the attribution row of the first sample for class.
func (v Values) Row(class int) ([]float64, error) {
	switch v.Shape {
	case ShapeSingle:
		if len(v.Rows) == 0 {
			return nil, fmt.Errorf("single array has no samples: %w", ErrUnsupportedShape)
		}
		return v.Rows[0], nil
	case ShapePerClass:
		if class >= len(v.Data) {
			return nil, fmt.Errorf("per-class list has %d classes, need class %d: %w", len(v.Data), class, ErrUnsupportedShape)
		}
		if len(v.Data[class]) == 0 {
			return nil, fmt.Errorf("class %d has no samples: %w", class, ErrUnsupportedShape)
		}
		return v.Data[class][0], nil
	case ShapeStacked:
		if len(v.Data) == 0 {
			return nil, fmt.Errorf("3-d array has no samples: %w", ErrUnsupportedShape)
		}
		sample := v.Data[0]
		row := make([]float64, len(sample))
		for j, perClass := range sample {
			if class >= len(perClass) {
				return nil, fmt.Errorf("feature %d has %d classes, need class %d: %w", j, len(perClass), class, ErrUnsupportedShape)
			}
			row[j] = perClass[class]
		}
		return row, nil
	default:
		return nil, fmt.Errorf("shape %d: %w", v.Shape, ErrUnsupportedShape)
	}
}

// Value reduces b to one scalar for class, following the same rule as Row.
func (b BaseValue) Value(class int) (float64, error) {
	switch b.Shape {
	case BaseScalar:
		return b.Scalar, nil
	case BasePerClass:
		if len(b.PerClass) == 1 {
			return b.PerClass[0], nil
		}
		if class >= len(b.PerClass) {
			return 0, fmt.Errorf("expected value has %d classes, need class %d: %w", len(b.PerClass), class, ErrUnsupportedShape)
		}
		return b.PerClass[class], nil
	case BasePerSample:
		if len(b.PerSample) == 0 {
			return 0, fmt.Errorf("base values have no samples: %w", ErrUnsupportedShape)
		}
		return PerClassBase(b.PerSample[0]).Value(class)
	default:
		return 0, fmt.Errorf("base shape %d: %w", b.Shape, ErrUnsupportedShape)
	}
}
