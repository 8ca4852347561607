package prediction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"liverRisk/business/attribution"
	"liverRisk/domain"
	"liverRisk/pkg/logger"
	"liverRisk/pkg/metrics"
	"liverRisk/pkg/mlmodel"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ---- Repository interfaces ----

type PredictionCache interface {
	Get(ctx context.Context, key string) (domain.PredictionResponse, bool, error)
	Set(ctx context.Context, key string, resp domain.PredictionResponse) error
}

type AuditRepository interface {
	Save(ctx context.Context, record *domain.PredictionAudit) error
}

type Options struct {
	// Member names the stack estimator the explainer binds to.
	Member string
	// IncludeConfidence emits the predicted-class probability.
	IncludeConfidence bool
	Strategies        []attribution.Strategy

	Cache PredictionCache
	Audit AuditRepository
}

func DefaultOptions() Options {
	return Options{
		Member:            attribution.DefaultMember,
		IncludeConfidence: true,
		Strategies:        attribution.DefaultStrategies(),
	}
}

// Service holds the state every request shares. It is fully built by
// NewService and read-only afterwards, so Predict may run concurrently.
type Service struct {
	bundle    *mlmodel.Bundle
	validate  *validator.Validate
	selected  []int
	names     []string
	explainer *attribution.Explainer

	includeConfidence bool
	cache             PredictionCache
	audit             AuditRepository
}

func NewService(b *mlmodel.Bundle, opts Options) (*Service, error) {
	if b == nil || b.Model == nil || b.Scaler == nil || b.Selector == nil {
		return nil, fmt.Errorf("model bundle is incomplete")
	}

	selected, err := mlmodel.SelectTopK(b.Selector.FeatureImportances, domain.SelectedFeatureCount)
	if err != nil {
		return nil, fmt.Errorf("select features: %w", err)
	}
	names := domain.DisplayNames(selected)

	member := opts.Member
	if member == "" {
		member = attribution.DefaultMember
	}
	strategies := opts.Strategies
	if strategies == nil {
		strategies = attribution.DefaultStrategies()
	}
	explainer := attribution.Build(attribution.Source{
		Model:      b.Model,
		Member:     member,
		Background: b.Background,
		Width:      len(selected),
	}, strategies)

	for _, s := range strategies {
		v := 0.0
		if s.Name == explainer.Strategy() {
			v = 1
		}
		metrics.ExplainerStrategy.WithLabelValues(s.Name).Set(v)
	}

	logger.Info("prediction service ready",
		"model_version", b.Version,
		"selected_features", strings.Join(names, ", "),
		"attribution_enabled", explainer.Enabled(),
	)

	return &Service{
		bundle:            b,
		validate:          NewValidator(),
		selected:          selected,
		names:             names,
		explainer:         explainer,
		includeConfidence: opts.IncludeConfidence,
		cache:             opts.Cache,
		audit:             opts.Audit,
	}, nil
}

// Status is the capability probe.
func (s *Service) Status() domain.HealthStatus {
	return domain.HealthStatus{
		ModelLoaded:        true,
		AttributionEnabled: s.explainer.Enabled(),
		Explainer:          s.explainer.Strategy(),
		SelectedFeatures:   append([]string(nil), s.names...),
		ModelVersion:       s.bundle.Version,
	}
}

// SelectedIndex returns the schema indices the model consumes.
func (s *Service) SelectedIndex() []int {
	return append([]int(nil), s.selected...)
}

// Predict runs validate, scale, select, predict, explain and assemble for one
// input. A *ValidationError means the input was rejected; any other error is
// an internal failure and no partial response is returned.
func (s *Service) Predict(ctx context.Context, in domain.PredictionInput) (domain.PredictionResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("context error: %w", err)
	}

	if err := Validate(s.validate, in); err != nil {
		metrics.ValidationFailures.Inc()
		return domain.PredictionResponse{}, err
	}

	start := time.Now()
	raw := in.Vector()
	key := s.cacheKey(raw)

	if s.cache != nil {
		if resp, ok, err := s.cache.Get(ctx, key); err != nil {
			logger.Warn("prediction cache read failed", "request_id", RequestIDFromContext(ctx), "error", err)
		} else if ok {
			metrics.CacheHits.Inc()
			return resp, nil
		}
	}

	outcome, err := s.run(raw, in)
	if err != nil {
		metrics.PredictionErrors.Inc()
		return domain.PredictionResponse{}, err
	}
	resp := Assemble(outcome)

	elapsed := time.Since(start)
	metrics.PredictLatency.Observe(elapsed.Seconds())
	metrics.PredictionsTotal.WithLabelValues(strconv.Itoa(outcome.Label)).Inc()

	logger.Debug("prediction",
		"request_id", RequestIDFromContext(ctx),
		"label", outcome.Label,
		"warnings", len(resp.Warnings),
		"attributions", len(resp.ShapContributions),
		"latency", elapsed,
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			logger.Warn("prediction cache write failed", "request_id", RequestIDFromContext(ctx), "error", err)
		}
	}
	if s.audit != nil {
		s.record(ctx, outcome, resp, elapsed)
	}

	return resp, nil
}

func (s *Service) run(raw []float64, in domain.PredictionInput) (Outcome, error) {
	scaled, err := s.bundle.Scaler.Transform(raw)
	if err != nil {
		return Outcome{}, fmt.Errorf("scale input: %w", err)
	}
	selected, err := mlmodel.Project(scaled, s.selected)
	if err != nil {
		return Outcome{}, fmt.Errorf("select features: %w", err)
	}
	original, err := mlmodel.Project(raw, s.selected)
	if err != nil {
		return Outcome{}, fmt.Errorf("select features: %w", err)
	}

	label, err := s.bundle.Model.Predict(selected)
	if err != nil {
		return Outcome{}, fmt.Errorf("predict: %w", err)
	}

	var confidence *float64
	if s.includeConfidence {
		proba, err := s.bundle.Model.PredictProba(selected)
		if err != nil {
			return Outcome{}, fmt.Errorf("predict proba: %w", err)
		}
		p := proba[label]
		confidence = &p
	}

	contributions, base, err := s.explainer.Explain(selected, original, s.names)
	if err != nil {
		return Outcome{}, fmt.Errorf("explain: %w", err)
	}

	return Outcome{
		Label:         label,
		Confidence:    confidence,
		Contributions: contributions,
		BaseValue:     base,
		Warnings:      GenerateWarnings(in),
	}, nil
}

func (s *Service) record(ctx context.Context, o Outcome, resp domain.PredictionResponse, elapsed time.Duration) {
	rec := &domain.PredictionAudit{
		ID:                 uuid.New(),
		RequestID:          RequestIDFromContext(ctx),
		ModelVersion:       s.bundle.Version,
		Label:              o.Label,
		WarningCount:       len(resp.Warnings),
		AttributionEnabled: s.explainer.Enabled(),
		LatencyMs:          elapsed.Milliseconds(),
	}
	if resp.Confidence != nil {
		rec.Confidence = *resp.Confidence
	}
	if len(resp.ShapContributions) > 0 {
		rec.TopFeature = resp.ShapContributions[0].Feature
	}
	if err := s.audit.Save(ctx, rec); err != nil {
		logger.Warn("prediction audit write failed", "request_id", rec.RequestID, "error", err)
	}
}

// cacheKey identifies an input under the loaded bundle's namespace.
func (s *Service) cacheKey(raw []float64) string {
	parts := make([]string, len(raw))
	for i, v := range raw {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, ",")))
	return s.bundle.Namespace() + ":" + hex.EncodeToString(sum[:])
}
