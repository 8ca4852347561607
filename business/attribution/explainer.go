package attribution

import (
	"fmt"

	"liverRisk/domain"
	"liverRisk/pkg/logger"
	"liverRisk/pkg/mlmodel"
)

const (
	StrategyTree   = "tree"
	StrategyExact  = "exact"
	StrategyLinear = "linear"
)

// DefaultMember is the stack member the tree explainer binds to.
const DefaultMember = "xgb"

// Source is everything a strategy may use to build its backend.
type Source struct {
	Model      *mlmodel.Stack
	Member     string
	Background [][]float64
	Width      int
}

// Strategy builds one explainer backend. The returned backend implements
// ValueBackend or ObjectBackend.
type Strategy struct {
	Name string
	New  func(src Source) (any, error)
}

// DefaultStrategies is the construction order: tree structure first, then
// the model-agnostic probability wrapper, then the meta-learner.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: StrategyTree, New: newTreeStrategy},
		{Name: StrategyExact, New: newExactStrategy},
		{Name: StrategyLinear, New: newLinearStrategy},
	}
}

func member(src Source) (*mlmodel.Estimator, error) {
	est, ok := src.Model.Estimator(src.Member)
	if !ok {
		return nil, fmt.Errorf("stack has no estimator named %q", src.Member)
	}
	return est, nil
}

func newTreeStrategy(src Source) (any, error) {
	est, err := member(src)
	if err != nil {
		return nil, err
	}
	return newTreeBackend(est, src.Width)
}

func newExactStrategy(src Source) (any, error) {
	est, err := member(src)
	if err != nil {
		return nil, err
	}
	return newExactBackend(est.PredictProba, src.Background, src.Width, 2)
}

func newLinearStrategy(src Source) (any, error) {
	return newLinearBackend(src.Model, src.Width)
}

// Explainer is the attribution capability. The zero value and nil are both
// the disabled capability.
type Explainer struct {
	strategy string
	backend  any
}

// Build tries each strategy in order and keeps the first that succeeds.
// When all fail the returned explainer is disabled; that is not an error.
func Build(src Source, strategies []Strategy) *Explainer {
	for _, s := range strategies {
		backend, err := s.New(src)
		if err != nil {
			logger.Warn("attribution strategy unavailable", "strategy", s.Name, "member", src.Member, "error", err)
			continue
		}
		logger.Info("attribution explainer ready", "strategy", s.Name, "member", src.Member)
		return &Explainer{strategy: s.Name, backend: backend}
	}
	logger.Warn("attribution disabled, every strategy failed", "member", src.Member)
	return &Explainer{}
}

func (e *Explainer) Enabled() bool {
	return e != nil && e.backend != nil
}

// Strategy names the backend in use, or "" when disabled.
func (e *Explainer) Strategy() string {
	if e == nil {
		return ""
	}
	return e.strategy
}

// Explain attributes one prediction over the selected features. selected is
// the scaled model input; original holds the same features unscaled, and
// names their display names. A disabled explainer returns an empty list and
// a zero baseline.
func (e *Explainer) Explain(selected, original []float64, names []string) ([]domain.ShapContribution, float64, error) {
	if !e.Enabled() {
		return []domain.ShapContribution{}, 0, nil
	}
	if len(original) != len(selected) || len(names) != len(selected) {
		return nil, 0, fmt.Errorf("explain: %d selected, %d original, %d names: %w",
			len(selected), len(original), len(names), mlmodel.ErrDimension)
	}

	row, baseline, err := run(e.backend, selected, DiseaseClass)
	if err != nil {
		return nil, 0, fmt.Errorf("%s explainer: %w", e.strategy, err)
	}
	if len(row) != len(selected) {
		return nil, 0, fmt.Errorf("%s explainer returned %d values for %d features: %w",
			e.strategy, len(row), len(selected), ErrUnsupportedShape)
	}

	return Rank(names, original, row), mlmodel.Round(baseline, 4), nil
}
