package prediction

import (
	"testing"

	"liverRisk/domain"
	"liverRisk/internal/modeltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWarnings_NormalInput(t *testing.T) {
	w := GenerateWarnings(modeltest.NormalInput())
	assert.NotNil(t, w)
	assert.Empty(t, w)
}

func TestGenerateWarnings_Severity(t *testing.T) {
	tests := []struct {
		name     string
		alp      float64
		severity domain.Severity
		fires    bool
	}{
		{"at limit", 147, "", false},
		{"just above", 147.01, domain.SeverityMild, true},
		{"below moderate", 220.4, domain.SeverityMild, true},
		{"moderate boundary", 220.5, domain.SeverityModerate, true},
		{"below high", 440.9, domain.SeverityModerate, true},
		{"high boundary", 441, domain.SeverityHigh, true},
		{"far above", 500, domain.SeverityHigh, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := modeltest.NormalInput()
			in.AlkalinePhosphatase = f64(tt.alp)

			w := GenerateWarnings(in)
			if !tt.fires {
				assert.Empty(t, w)
				return
			}
			require.Len(t, w, 1)
			assert.Equal(t, "Alkaline Phosphatase", w[0].Marker)
			assert.Equal(t, 147.0, w[0].UpperLimit)
			assert.Equal(t, tt.severity, w[0].Severity)
		})
	}
}

func TestGenerateWarnings_Message(t *testing.T) {
	in := modeltest.NormalInput()
	in.AlkalinePhosphatase = f64(500)
	in.TotalBilirubin = f64(1.5)

	w := GenerateWarnings(in)
	require.Len(t, w, 2)
	assert.Equal(t, domain.MedicalWarning{
		Marker:     "Alkaline Phosphatase",
		Value:      500,
		UpperLimit: 147,
		Severity:   domain.SeverityHigh,
		Message:    "Alkaline Phosphatase is highly elevated (normal upper limit 147.0).",
	}, w[0])
	assert.Equal(t, "Total Bilirubin is mildly elevated (normal upper limit 1.2).", w[1].Message)
}

func TestGenerateWarnings_Order(t *testing.T) {
	w := GenerateWarnings(modeltest.AbnormalInput())

	markers := make([]string, len(w))
	for i, m := range w {
		markers[i] = m.Marker
	}
	assert.Equal(t, []string{"Alkaline Phosphatase", "ALT / SGPT", "AST / SGOT", "Total Bilirubin", "Direct Bilirubin"}, markers)
}

func TestFormatLimit(t *testing.T) {
	assert.Equal(t, "147.0", formatLimit(147))
	assert.Equal(t, "0.3", formatLimit(0.3))
	assert.Equal(t, "1.2", formatLimit(1.2))
}

func TestGenerateWarnings_HugeValueKeptFinite(t *testing.T) {
	in := modeltest.NormalInput()
	in.AlkalinePhosphatase = f64(1e307)

	w := GenerateWarnings(in)
	require.Len(t, w, 1)
	assert.Equal(t, 1e307, w[0].Value)
	assert.Equal(t, domain.SeverityHigh, w[0].Severity)
}
