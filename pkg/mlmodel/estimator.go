package mlmodel

import (
	"fmt"
)

const (
	// KindGBDT is a boosted ensemble whose leaves hold log-odds margins.
	KindGBDT = "gbdt"
	// KindForest is a bagged ensemble whose leaves hold class distributions.
	KindForest = "forest"
	// KindLogistic is a plain logistic regression.
	KindLogistic = "logistic"
)

// Estimator is one named base learner of a stacked model.
type Estimator struct {
	Name  string    `yaml:"name"`
	Kind  string    `yaml:"kind"`
	Split SplitRule `yaml:"split"`

	// gbdt, forest
	BaseMargin float64 `yaml:"base_margin"`
	Trees      []Tree  `yaml:"trees"`

	// logistic
	Coef      []float64 `yaml:"coef"`
	Intercept float64   `yaml:"intercept"`
}

// Outputs is the width of every leaf value for tree members.
func (e *Estimator) Outputs() int {
	if e.Kind == KindForest {
		return 2
	}
	return 1
}

// Rule resolves the split rule, defaulting to the scikit-learn convention.
func (e *Estimator) Rule() SplitRule {
	if e.Split == "" {
		return SplitLessEqual
	}
	return e.Split
}

func (e *Estimator) Validate(dim int) error {
	switch e.Kind {
	case KindGBDT, KindForest:
		if len(e.Trees) == 0 {
			return fmt.Errorf("estimator %q has no trees", e.Name)
		}
		if r := e.Rule(); r != SplitLess && r != SplitLessEqual {
			return fmt.Errorf("estimator %q: unknown split rule %q", e.Name, r)
		}
		for i := range e.Trees {
			if err := e.Trees[i].Validate(dim, e.Outputs()); err != nil {
				return fmt.Errorf("estimator %q tree %d: %w", e.Name, i, err)
			}
		}
	case KindLogistic:
		if err := checkDim(fmt.Sprintf("estimator %q coef", e.Name), len(e.Coef), dim); err != nil {
			return err
		}
	default:
		return fmt.Errorf("estimator %q: unknown kind %q", e.Name, e.Kind)
	}
	return nil
}

// Margin is the raw log-odds output of a boosted or linear member.
func (e *Estimator) Margin(x []float64) (float64, error) {
	switch e.Kind {
	case KindGBDT:
		m := e.BaseMargin
		rule := e.Rule()
		for i := range e.Trees {
			m += e.Trees[i].Evaluate(x, rule)[0]
		}
		return m, nil
	case KindLogistic:
		if err := checkDim("logistic input", len(x), len(e.Coef)); err != nil {
			return 0, err
		}
		return dot(e.Coef, x) + e.Intercept, nil
	default:
		return 0, fmt.Errorf("estimator %q of kind %q has no margin", e.Name, e.Kind)
	}
}

// PredictProba returns [p(class 0), p(class 1)] for one sample.
func (e *Estimator) PredictProba(x []float64) ([]float64, error) {
	if e.Kind == KindForest {
		var p0, p1 float64
		rule := e.Rule()
		for i := range e.Trees {
			v := e.Trees[i].Evaluate(x, rule)
			p0 += v[0]
			p1 += v[1]
		}
		n := float64(len(e.Trees))
		return []float64{p0 / n, p1 / n}, nil
	}

	m, err := e.Margin(x)
	if err != nil {
		return nil, err
	}
	p1 := Sigmoid(m)
	return []float64{1 - p1, p1}, nil
}
