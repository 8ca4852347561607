package mlmodel

import (
	"fmt"
)

// Logistic is the stacking meta-learner.
type Logistic struct {
	Coef      []float64 `yaml:"coef"`
	Intercept float64   `yaml:"intercept"`
}

func (l *Logistic) DecisionFunction(z []float64) (float64, error) {
	if err := checkDim("meta-learner input", len(z), len(l.Coef)); err != nil {
		return 0, err
	}
	return dot(l.Coef, z) + l.Intercept, nil
}

// Stack is a binary stacking classifier. The meta-learner sees the class-1
// probability of each base estimator in declaration order, followed by the
// input vector itself when Passthrough is set.
type Stack struct {
	Estimators     []Estimator `yaml:"estimators"`
	FinalEstimator *Logistic   `yaml:"final_estimator"`
	Passthrough    bool        `yaml:"passthrough"`
}

// Validate checks every member against the input width dim.
func (s *Stack) Validate(dim int) error {
	if len(s.Estimators) == 0 {
		return fmt.Errorf("stack has no estimators")
	}
	seen := make(map[string]bool, len(s.Estimators))
	for i := range s.Estimators {
		e := &s.Estimators[i]
		if e.Name == "" {
			return fmt.Errorf("estimator %d has no name", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate estimator name %q", e.Name)
		}
		seen[e.Name] = true
		if err := e.Validate(dim); err != nil {
			return err
		}
	}
	if s.FinalEstimator == nil {
		return fmt.Errorf("stack has no final_estimator")
	}
	return checkDim("final_estimator coef", len(s.FinalEstimator.Coef), s.MetaWidth(dim))
}

// MetaWidth is the meta-learner input width for an input of width dim.
func (s *Stack) MetaWidth(dim int) int {
	if s.Passthrough {
		return len(s.Estimators) + dim
	}
	return len(s.Estimators)
}

// Estimator looks up a base learner by name.
func (s *Stack) Estimator(name string) (*Estimator, bool) {
	for i := range s.Estimators {
		if s.Estimators[i].Name == name {
			return &s.Estimators[i], true
		}
	}
	return nil, false
}

// MetaFeatures builds the meta-learner input for one sample.
func (s *Stack) MetaFeatures(x []float64) ([]float64, error) {
	z := make([]float64, 0, s.MetaWidth(len(x)))
	for i := range s.Estimators {
		p, err := s.Estimators[i].PredictProba(x)
		if err != nil {
			return nil, fmt.Errorf("estimator %q: %w", s.Estimators[i].Name, err)
		}
		z = append(z, p[1])
	}
	if s.Passthrough {
		z = append(z, x...)
	}
	return z, nil
}

// PredictProba returns [p(class 0), p(class 1)] for one sample.
func (s *Stack) PredictProba(x []float64) ([]float64, error) {
	z, err := s.MetaFeatures(x)
	if err != nil {
		return nil, err
	}
	m, err := s.FinalEstimator.DecisionFunction(z)
	if err != nil {
		return nil, err
	}
	p1 := Sigmoid(m)
	return []float64{1 - p1, p1}, nil
}

// Predict returns the class label; class 1 wins only on a strictly positive
// decision value.
func (s *Stack) Predict(x []float64) (int, error) {
	z, err := s.MetaFeatures(x)
	if err != nil {
		return 0, err
	}
	m, err := s.FinalEstimator.DecisionFunction(z)
	if err != nil {
		return 0, err
	}
	if m > 0 {
		return 1, nil
	}
	return 0, nil
}
