package prediction

import (
	"fmt"
	"strconv"
	"strings"

	"liverRisk/domain"
	"liverRisk/pkg/mlmodel"
)

type warningRule struct {
	marker string
	limit  float64
	value  func(domain.PredictionInput) *float64
}

// warningRules are the clinical upper limits, in report order.
var warningRules = []warningRule{
	{"Alkaline Phosphatase", 147.0, func(in domain.PredictionInput) *float64 { return in.AlkalinePhosphatase }},
	{"ALT / SGPT", 56.0, func(in domain.PredictionInput) *float64 { return in.ALT }},
	{"AST / SGOT", 48.0, func(in domain.PredictionInput) *float64 { return in.AST }},
	{"Total Bilirubin", 1.2, func(in domain.PredictionInput) *float64 { return in.TotalBilirubin }},
	{"Direct Bilirubin", 0.3, func(in domain.PredictionInput) *float64 { return in.DirectBilirubin }},
}

// GenerateWarnings flags every marker above its upper limit. The result is
// never nil.
func GenerateWarnings(in domain.PredictionInput) []domain.MedicalWarning {
	warnings := []domain.MedicalWarning{}
	for _, r := range warningRules {
		p := r.value(in)
		if p == nil || *p <= r.limit {
			continue
		}
		value := *p
		severity, label := classify(value, r.limit)
		warnings = append(warnings, domain.MedicalWarning{
			Marker:     r.marker,
			Value:      mlmodel.Round(value, 2),
			UpperLimit: r.limit,
			Severity:   severity,
			Message: fmt.Sprintf("%s is %s (normal upper limit %s).",
				r.marker, label, formatLimit(r.limit)),
		})
	}
	return warnings
}

// classify grades value/limit. The ratio is never formed so the 1.5 and 3
// boundaries are not subject to division rounding.
func classify(value, limit float64) (domain.Severity, string) {
	switch {
	case value >= 3*limit:
		return domain.SeverityHigh, "highly elevated"
	case 2*value >= 3*limit:
		return domain.SeverityModerate, "moderately elevated"
	default:
		return domain.SeverityMild, "mildly elevated"
	}
}

// formatLimit prints whole limits with one decimal, e.g. "147.0".
func formatLimit(limit float64) string {
	s := strconv.FormatFloat(limit, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
