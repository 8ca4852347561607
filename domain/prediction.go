package domain

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// BinaryCode is a categorical 0/1 input. It decodes from any JSON number
// without a fractional part, so 1 and 1.0 are the same value.
type BinaryCode int

func (c *BinaryCode) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return &json.UnmarshalTypeError{
			Value: "number " + strconv.FormatFloat(v, 'g', -1, 64),
			Type:  reflect.TypeOf(*c),
		}
	}
	*c = BinaryCode(v)
	return nil
}

// PredictionInput is one patient's raw lab panel. Fields are pointers so a
// missing field is distinguishable from an explicit zero.
type PredictionInput struct {
	Age    *float64    `json:"age" validate:"required,gte=0,lte=120"`
	Gender *BinaryCode `json:"gender" validate:"required,oneof=0 1"`

	TotalBilirubin  *float64 `json:"total_bilirubin" validate:"required,gte=0"`
	DirectBilirubin *float64 `json:"direct_bilirubin" validate:"required,gte=0"`

	AlkalinePhosphatase *float64 `json:"alkaline_phosphatase" validate:"required,gte=0"`
	ALT                 *float64 `json:"alt" validate:"required,gte=0"`
	AST                 *float64 `json:"ast" validate:"required,gte=0"`

	TotalProteins *float64 `json:"total_proteins" validate:"required,gte=0"`
	Albumin       *float64 `json:"albumin" validate:"required,gte=0"`
	AGRatio       *float64 `json:"ag_ratio" validate:"required,gte=0"`
}

// Vector returns the raw values in FeatureSchema order. Call it on validated
// input only; absent fields read as zero.
func (p PredictionInput) Vector() []float64 {
	gender := 0.0
	if p.Gender != nil {
		gender = float64(*p.Gender)
	}
	return []float64{
		deref(p.Age),
		gender,
		deref(p.TotalBilirubin),
		deref(p.DirectBilirubin),
		deref(p.AlkalinePhosphatase),
		deref(p.ALT),
		deref(p.AST),
		deref(p.TotalProteins),
		deref(p.Albumin),
		deref(p.AGRatio),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

type MedicalWarning struct {
	Marker     string   `json:"marker"`
	Value      float64  `json:"value"`
	UpperLimit float64  `json:"upper_limit"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
}

const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
)

// ShapContribution is one selected feature's share of the explained output.
type ShapContribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Impact       string  `json:"impact"`
}

type PredictionResponse struct {
	Prediction        string             `json:"prediction"`
	Risk              string             `json:"risk"`
	Confidence        *float64           `json:"confidence,omitempty"`
	Summary           string             `json:"summary"`
	Warnings          []MedicalWarning   `json:"warnings"`
	ShapContributions []ShapContribution `json:"shap_contributions"`
	BaseValue         float64            `json:"base_value"`
}

// HealthStatus is the capability probe payload.
type HealthStatus struct {
	ModelLoaded        bool     `json:"model_loaded"`
	AttributionEnabled bool     `json:"attribution_enabled"`
	Explainer          string   `json:"explainer"`
	SelectedFeatures   []string `json:"selected_features"`
	ModelVersion       string   `json:"model_version,omitempty"`
}
