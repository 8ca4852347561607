package mlmodel

import (
	"fmt"
)

const (
	ScalerMinMax   = "minmax"
	ScalerStandard = "standard"
)

// Scaler replays the statistics a scaler was fitted with. It never refits.
type Scaler struct {
	Kind string `yaml:"kind"`

	// minmax
	DataMin      []float64 `yaml:"data_min"`
	DataMax      []float64 `yaml:"data_max"`
	FeatureRange []float64 `yaml:"feature_range"`

	// standard
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

// Validate checks the fitted parameters against the raw feature width.
func (s *Scaler) Validate(dim int) error {
	switch s.Kind {
	case ScalerMinMax, "":
		if err := checkDim("scaler data_min", len(s.DataMin), dim); err != nil {
			return err
		}
		if err := checkDim("scaler data_max", len(s.DataMax), dim); err != nil {
			return err
		}
		if len(s.FeatureRange) != 0 && len(s.FeatureRange) != 2 {
			return fmt.Errorf("scaler feature_range must have 2 values, got %d", len(s.FeatureRange))
		}
		if !allFinite(s.DataMin) || !allFinite(s.DataMax) {
			return fmt.Errorf("scaler statistics must be finite")
		}
	case ScalerStandard:
		if err := checkDim("scaler mean", len(s.Mean), dim); err != nil {
			return err
		}
		if err := checkDim("scaler scale", len(s.Scale), dim); err != nil {
			return err
		}
		if !allFinite(s.Mean) || !allFinite(s.Scale) {
			return fmt.Errorf("scaler statistics must be finite")
		}
	default:
		return fmt.Errorf("unknown scaler kind %q", s.Kind)
	}
	return nil
}

// Transform maps a raw vector into the scaled space the model was trained on.
// Zero-width ranges and zero scales divide by one, matching scikit-learn.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	out := make([]float64, len(x))

	switch s.Kind {
	case ScalerMinMax, "":
		if err := checkDim("scaler input", len(x), len(s.DataMin)); err != nil {
			return nil, err
		}
		lo, hi := 0.0, 1.0
		if len(s.FeatureRange) == 2 {
			lo, hi = s.FeatureRange[0], s.FeatureRange[1]
		}
		for i, v := range x {
			span := s.DataMax[i] - s.DataMin[i]
			if span == 0 {
				span = 1
			}
			scale := (hi - lo) / span
			out[i] = v*scale + (lo - s.DataMin[i]*scale)
		}
	case ScalerStandard:
		if err := checkDim("scaler input", len(x), len(s.Mean)); err != nil {
			return nil, err
		}
		for i, v := range x {
			scale := s.Scale[i]
			if scale == 0 {
				scale = 1
			}
			out[i] = (v - s.Mean[i]) / scale
		}
	default:
		return nil, fmt.Errorf("unknown scaler kind %q", s.Kind)
	}

	return out, nil
}
