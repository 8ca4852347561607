package prediction

import (
	"encoding/json"
	"testing"

	"liverRisk/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	some := []domain.MedicalWarning{{Marker: "ALT / SGPT"}}

	assert.Equal(t, SummaryNegativeClear, Summary(0, nil))
	assert.Equal(t, SummaryNegativeWarnings, Summary(0, some))
	assert.Equal(t, SummaryPositiveClear, Summary(1, []domain.MedicalWarning{}))
	assert.Equal(t, SummaryPositiveWarnings, Summary(1, some))
}

func TestAssemble_LabelDrivesPredictionAndRisk(t *testing.T) {
	neg := Assemble(Outcome{Label: 0})
	assert.Equal(t, PredictionNegative, neg.Prediction)
	assert.Equal(t, RiskLow, neg.Risk)

	pos := Assemble(Outcome{Label: 1})
	assert.Equal(t, PredictionPositive, pos.Prediction)
	assert.Equal(t, RiskHigh, pos.Risk)
}

func TestAssemble_EmptyListsAndConfidence(t *testing.T) {
	c := 0.87654
	resp := Assemble(Outcome{Label: 1, Confidence: &c})

	require.NotNil(t, resp.Confidence)
	assert.Equal(t, 0.877, *resp.Confidence)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"prediction": "Liver Disease Detected",
		"risk": "High Risk",
		"confidence": 0.877,
		"summary": "High risk of liver disease detected.",
		"warnings": [],
		"shap_contributions": [],
		"base_value": 0
	}`, string(raw))

	raw, err = json.Marshal(Assemble(Outcome{}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "confidence")
}
