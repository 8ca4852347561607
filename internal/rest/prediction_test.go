package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"liverRisk/business/prediction"
	"liverRisk/domain"
	"liverRisk/internal/modeltest"
	jsonres "liverRisk/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const normalBody = `{
	"age": 45, "gender": 1,
	"total_bilirubin": 0.8, "direct_bilirubin": 0.2,
	"alkaline_phosphatase": 120, "alt": 30, "ast": 28,
	"total_proteins": 7.0, "albumin": 4.2, "ag_ratio": 1.2
}`

type stubService struct {
	resp domain.PredictionResponse
	err  error
	got  domain.PredictionInput
	rid  string
}

func (s *stubService) Predict(ctx context.Context, in domain.PredictionInput) (domain.PredictionResponse, error) {
	s.got = in
	s.rid = prediction.RequestIDFromContext(ctx)
	return s.resp, s.err
}

func (s *stubService) Status() domain.HealthStatus {
	return domain.HealthStatus{ModelLoaded: true, AttributionEnabled: true, Explainer: "tree", SelectedFeatures: []string{"Age"}}
}

func doPredict(t *testing.T, svc PredictionService, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderXRequestID, "rid-42")
	c := e.NewContext(req, rec)

	require.NoError(t, NewPredictionHandler(svc).Predict(c))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) jsonres.ErrorBody {
	t.Helper()
	var body jsonres.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPredictionHandler_OK(t *testing.T) {
	svc := &stubService{resp: domain.PredictionResponse{
		Prediction:        prediction.PredictionNegative,
		Risk:              prediction.RiskLow,
		Summary:           prediction.SummaryNegativeClear,
		Warnings:          []domain.MedicalWarning{},
		ShapContributions: []domain.ShapContribution{},
	}}

	rec := doPredict(t, svc, normalBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"prediction": "No Liver Disease Detected",
		"risk": "Low Risk",
		"summary": "No liver disease detected based on the model prediction.",
		"warnings": [],
		"shap_contributions": [],
		"base_value": 0
	}`, rec.Body.String())

	require.NotNil(t, svc.got.AlkalinePhosphatase)
	assert.Equal(t, 120.0, *svc.got.AlkalinePhosphatase)
	assert.Equal(t, "rid-42", svc.rid)
}

func TestPredictionHandler_MalformedBody(t *testing.T) {
	rec := doPredict(t, &stubService{}, `{"age": 45,`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "Invalid input data", body.Error)
	require.Len(t, body.Details, 1)
	assert.True(t, strings.HasPrefix(body.Details[0], "body: "), body.Details[0])
}

func TestPredictionHandler_WrongType(t *testing.T) {
	rec := doPredict(t, &stubService{}, `{"age": "forty"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input data", decodeError(t, rec).Error)
}

func TestPredictionHandler_ValidationDetails(t *testing.T) {
	svc, err := prediction.NewService(modeltest.Bundle(), prediction.DefaultOptions())
	require.NoError(t, err)

	body := strings.Replace(normalBody, `"direct_bilirubin": 0.2`, `"direct_bilirubin": 1.5`, 1)
	rec := doPredict(t, svc, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	got := decodeError(t, rec)
	assert.Equal(t, "Invalid input data", got.Error)
	assert.Equal(t, []string{
		"direct_bilirubin: direct_bilirubin cannot exceed total_bilirubin",
	}, got.Details)
}

func TestPredictionHandler_MissingField(t *testing.T) {
	svc, err := prediction.NewService(modeltest.Bundle(), prediction.DefaultOptions())
	require.NoError(t, err)

	rec := doPredict(t, svc, `{"age": 45}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "gender: field required")
}

func TestPredictionHandler_InternalErrorIsOpaque(t *testing.T) {
	svc := &stubService{err: errors.New("predict: dimension mismatch at meta-learner")}

	rec := doPredict(t, svc, normalBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Prediction failed"}`, rec.Body.String())
}

func TestPredictionHandler_EndToEnd(t *testing.T) {
	svc, err := prediction.NewService(modeltest.Bundle(), prediction.DefaultOptions())
	require.NoError(t, err)

	rec := doPredict(t, svc, normalBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, prediction.SummaryNegativeClear, resp.Summary)
	assert.Len(t, resp.ShapContributions, 6)
}

func TestPredictionHandler_WholeNumberGender(t *testing.T) {
	svc := &stubService{}

	rec := doPredict(t, svc, strings.Replace(normalBody, `"gender": 1`, `"gender": 1.0`, 1))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Gender)
	assert.Equal(t, domain.BinaryCode(1), *svc.got.Gender)

	rec = doPredict(t, &stubService{}, strings.Replace(normalBody, `"gender": 1`, `"gender": 1.5`, 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input data", decodeError(t, rec).Error)
}

func TestPredictionHandler_HugeLabValues(t *testing.T) {
	svc, err := prediction.NewService(modeltest.Bundle(), prediction.DefaultOptions())
	require.NoError(t, err)

	body := strings.NewReplacer(
		`"alkaline_phosphatase": 120`, `"alkaline_phosphatase": 1e308`,
		`"alt": 30`, `"alt": 1e308`,
		`"ast": 28`, `"ast": 1e308`,
	).Replace(normalBody)
	rec := doPredict(t, svc, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Warnings, 3)
	for _, w := range resp.Warnings {
		assert.Equal(t, 1e308, w.Value, w.Marker)
	}
}

func TestPredictionHandler_Health(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, NewPredictionHandler(&stubService{}).Health(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"model_loaded": true,
		"attribution_enabled": true,
		"explainer": "tree",
		"selected_features": ["Age"]
	}`, rec.Body.String())
}
