package prediction

import (
	"liverRisk/domain"
	"liverRisk/pkg/mlmodel"
)

const (
	PredictionPositive = "Liver Disease Detected"
	PredictionNegative = "No Liver Disease Detected"

	RiskHigh = "High Risk"
	RiskLow  = "Low Risk"

	SummaryNegativeClear    = "No liver disease detected based on the model prediction."
	SummaryNegativeWarnings = "Low overall risk, with some abnormal lab values."
	SummaryPositiveClear    = "High risk of liver disease detected."
	SummaryPositiveWarnings = "High risk of liver disease detected, driven by abnormal lab values."
)

// Summary picks the summary line for a label and whether any warning fired.
func Summary(label int, warnings []domain.MedicalWarning) string {
	if label == 0 {
		if len(warnings) == 0 {
			return SummaryNegativeClear
		}
		return SummaryNegativeWarnings
	}
	if len(warnings) == 0 {
		return SummaryPositiveClear
	}
	return SummaryPositiveWarnings
}

// Outcome is everything the pipeline produced for one request.
type Outcome struct {
	Label         int
	Confidence    *float64
	Contributions []domain.ShapContribution
	BaseValue     float64
	Warnings      []domain.MedicalWarning
}

// Assemble builds the response. Prediction and risk are both keyed on the
// label so they cannot disagree.
func Assemble(o Outcome) domain.PredictionResponse {
	resp := domain.PredictionResponse{
		Prediction:        PredictionNegative,
		Risk:              RiskLow,
		Summary:           Summary(o.Label, o.Warnings),
		Warnings:          o.Warnings,
		ShapContributions: o.Contributions,
		BaseValue:         o.BaseValue,
	}
	if o.Label == 1 {
		resp.Prediction = PredictionPositive
		resp.Risk = RiskHigh
	}
	if o.Confidence != nil {
		c := mlmodel.Round(*o.Confidence, 3)
		resp.Confidence = &c
	}
	if resp.Warnings == nil {
		resp.Warnings = []domain.MedicalWarning{}
	}
	if resp.ShapContributions == nil {
		resp.ShapContributions = []domain.ShapContribution{}
	}
	return resp
}
