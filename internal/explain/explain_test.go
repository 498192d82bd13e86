package explain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/sim"
)

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func sampleRequest(success bool) sim.ExplainRequest {
	return sim.ExplainRequest{
		InterventionID:   "oxygen_support",
		InterventionName: "High-Flow Oxygen",
		CaseID:           "febrile_seizure",
		CaseCategory:     "neurological",
		Stage:            1,
		StageDescription: "Active seizure on arrival",
		Success:          success,
	}
}

func TestTemplateIsDeterministic(t *testing.T) {
	var tmpl Template
	a, err := tmpl.Explain(context.Background(), sampleRequest(true))
	require.NoError(t, err)
	b, err := tmpl.Explain(context.Background(), sampleRequest(true))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Contains(t, a, "High-Flow Oxygen")
	assert.Contains(t, a, "Active seizure on arrival")
}

func TestTemplateDistinguishesOutcome(t *testing.T) {
	var tmpl Template
	ok, err := tmpl.Explain(context.Background(), sampleRequest(true))
	require.NoError(t, err)
	failed, err := tmpl.Explain(context.Background(), sampleRequest(false))
	require.NoError(t, err)

	assert.NotEqual(t, ok, failed)
	assert.Contains(t, failed, "failed")
}

type stubRemote struct {
	text string
	err  error
}

func (s stubRemote) Explain(context.Context, sim.ExplainRequest) (string, error) {
	return s.text, s.err
}

func TestFallbackPassesRemoteThrough(t *testing.T) {
	svc := NewWithFallback(stubRemote{text: "remote guidance"}, zap.NewNop())
	text, err := svc.Explain(context.Background(), sampleRequest(true))
	require.NoError(t, err)
	assert.Equal(t, "remote guidance", text)
}

func TestFallbackOnRemoteError(t *testing.T) {
	svc := NewWithFallback(stubRemote{err: errors.New("connection refused")}, zap.NewNop())
	text, err := svc.Explain(context.Background(), sampleRequest(true))
	require.NoError(t, err)
	assert.Contains(t, text, "High-Flow Oxygen")
}

func TestFallbackOnEmptyRemoteAnswer(t *testing.T) {
	svc := NewWithFallback(stubRemote{}, zap.NewNop())
	text, err := svc.Explain(context.Background(), sampleRequest(false))
	require.NoError(t, err)
	assert.Contains(t, text, "failed")
}

func TestFallbackWithoutRemote(t *testing.T) {
	svc := NewWithFallback(nil, nil)
	text, err := svc.Explain(context.Background(), sampleRequest(true))
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestComposerFoldsNextSteps(t *testing.T) {
	var got composeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/explain", r.URL.Path)
		require.NoError(t, decodeJSON(r, &got))
		writeJSON(w, composeResponse{
			Explanation: "Oxygen first.",
			NextSteps:   []string{"Recheck saturation", "Prepare suction"},
		})
	}))
	defer srv.Close()

	text, err := NewComposer(srv.URL).Explain(context.Background(), sampleRequest(true))
	require.NoError(t, err)
	assert.Equal(t, "Oxygen first.\nNext: Recheck saturation\nNext: Prepare suction", text)
	assert.Equal(t, "oxygen_support", got.InterventionID)
	assert.Equal(t, 1, got.Stage)
	assert.True(t, got.Success)
}

func TestComposerRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewComposer(srv.URL).Explain(context.Background(), sampleRequest(true))
	assert.ErrorContains(t, err, "503")
}

func TestComposerReportsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := NewComposer(srv.URL).Explain(context.Background(), sampleRequest(true))
	assert.Error(t, err)
}
