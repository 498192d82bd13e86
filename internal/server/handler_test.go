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

	"github.com/brightward-health/pedsim/internal/catalog"
	"github.com/brightward-health/pedsim/internal/sim"
)

func testServer(t *testing.T) (*httptest.Server, *SessionManager) {
	t.Helper()
	cat := catalog.Load()
	manager := NewSessionManager(cat, zap.NewNop(), nil, nil, 1)
	t.Cleanup(manager.Close)

	srv := httptest.NewServer(NewHandler(manager, cat).Routes())
	t.Cleanup(srv.Close)
	return srv, manager
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	return resp
}

func startSession(t *testing.T, srv *httptest.Server, caseID string) sim.Snapshot {
	t.Helper()
	resp := postJSON(t, srv.URL+"/sessions", startSessionRequest{CaseID: caseID})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var snap sim.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

func TestListCases(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/cases")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cases []caseSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cases))
	require.NotEmpty(t, cases)

	ids := make(map[string]bool)
	for _, c := range cases {
		ids[c.ID] = true
		assert.NotEmpty(t, c.Name)
		assert.Positive(t, c.Stages)
	}
	assert.True(t, ids["febrile_seizure"])
}

func TestStartSession(t *testing.T) {
	srv, _ := testServer(t)

	snap := startSession(t, srv, "anaphylaxis")
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, "anaphylaxis", snap.CaseID)
	assert.Equal(t, 1, snap.Stage)
	assert.NotEmpty(t, snap.Interventions)
}

func TestStartSessionUnknownCase(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/sessions", startSessionRequest{CaseID: "ghost"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartSessionBadBody(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSnapshot(t *testing.T) {
	srv, _ := testServer(t)
	started := startSession(t, srv, "febrile_seizure")

	resp, err := http.Get(srv.URL + "/sessions/" + started.SessionID + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap sim.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, started.SessionID, snap.SessionID)
	assert.False(t, snap.Completed)
}

func TestSnapshotUnknownSession(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/sessions/nope/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApplyIntervention(t *testing.T) {
	srv, _ := testServer(t)
	started := startSession(t, srv, "febrile_seizure")

	resp := postJSON(t, srv.URL+"/sessions/"+started.SessionID+"/interventions",
		applyRequest{InterventionID: "oxygen_support"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result sim.ApplyResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "oxygen_support", result.InterventionID)
	assert.False(t, result.Ignored)
}

func TestPauseGatesInterventions(t *testing.T) {
	srv, _ := testServer(t)
	started := startSession(t, srv, "febrile_seizure")
	base := srv.URL + "/sessions/" + started.SessionID

	resp := postJSON(t, base+"/pause", struct{}{})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = postJSON(t, base+"/interventions", applyRequest{InterventionID: "oxygen_support"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result sim.ApplyResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Ignored)

	resp = postJSON(t, base+"/resume", struct{}{})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestEndSession(t *testing.T) {
	srv, manager := testServer(t)
	started := startSession(t, srv, "septic_shock")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+started.SessionID+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = manager.Snapshot(started.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
