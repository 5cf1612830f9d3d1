package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heliosworks/habplanner/pkg/generator"
	"github.com/heliosworks/habplanner/pkg/habitat"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	return New(0, zap.NewNop()).Handler()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func generatedLayout(t *testing.T) *habitat.Layout {
	t.Helper()
	layout, err := generator.Generate(generator.DefaultConfig(), habitat.DefaultSettings())
	require.NoError(t, err)
	return layout
}

func TestGenerateEndpoint(t *testing.T) {
	h := testServer(t)

	rec := postJSON(t, h, "/api/generate", generator.DefaultConfig())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var layout habitat.Layout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layout))
	assert.Len(t, layout.Zones, 9)
	assert.Equal(t, 4, layout.Metadata.Crew)
}

func TestGenerateEndpointBadConfig(t *testing.T) {
	h := testServer(t)

	cfg := generator.DefaultConfig()
	cfg.Crew = 12
	rec := postJSON(t, h, "/api/generate", cfg)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "crew")
	assert.NotEmpty(t, body["request_id"])
}

func TestGenerateEndpointMalformedBody(t *testing.T) {
	h := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateEndpoint(t *testing.T) {
	h := testServer(t)

	rec := postJSON(t, h, "/api/validate", generatedLayout(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result habitat.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Passed)
	assert.Empty(t, result.FailedRules)
}

func TestValidateEndpointStructurallyInvalid(t *testing.T) {
	h := testServer(t)

	layout := generatedLayout(t)
	layout.Zones[0].UsableRatio = 2.0
	rec := postJSON(t, h, "/api/validate", layout)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreEndpoint(t *testing.T) {
	h := testServer(t)

	rec := postJSON(t, h, "/api/score", map[string]any{"layout": generatedLayout(t)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Metrics habitat.Metrics `json:"metrics"`
		Score   float64         `json:"score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Metrics.Feasibility)
	assert.Greater(t, body.Score, 0.0)
}

func TestScoreEndpointMissingLayout(t *testing.T) {
	h := testServer(t)

	rec := postJSON(t, h, "/api/score", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimizeEndpoint(t *testing.T) {
	h := testServer(t)

	rec := postJSON(t, h, "/api/optimize", map[string]any{
		"layout":     generatedLayout(t),
		"iterations": 50,
		"seed":       9,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result habitat.OptimizationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.History, 51)
	assert.NotNil(t, result.Layout)
}

func TestOptimizeEndpointIterationBounds(t *testing.T) {
	h := testServer(t)

	for _, iters := range []int{0, maxOptimizeIterations + 1} {
		rec := postJSON(t, h, "/api/optimize", map[string]any{
			"layout":     generatedLayout(t),
			"iterations": iters,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "iterations=%d", iters)
	}
}

func TestDefaultsEndpoint(t *testing.T) {
	h := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/defaults", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Config   generator.Config           `json:"config"`
		Settings habitat.ConstraintSettings `json:"settings"`
		Weights  habitat.ScoreWeights       `json:"weights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Config.Crew)
	assert.Equal(t, 2, body.Settings.MinCrew)
	assert.InDelta(t, 0.20, body.Weights.VolumeEff, 1e-9)
}
