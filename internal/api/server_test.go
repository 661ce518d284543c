package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/persona-score/internal/harness"
	"github.com/danielpatrickdp/persona-score/internal/scoring"
	"github.com/danielpatrickdp/persona-score/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, withStore bool) (*Server, *store.Store) {
	t.Helper()
	if !withStore {
		return NewServer(scoring.Default(), nil, nil, nil), nil
	}
	st, err := store.NewStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	sess, err := st.Session("http", "test")
	require.NoError(t, err)
	return NewServer(scoring.Default(), st, sess, nil), st
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, false)
	rec := do(t, srv.Routes(), http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string   `json:"status"`
		Rules  []string `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Len(t, body.Rules, 7)
}

func TestEvaluate(t *testing.T) {
	srv, st := newTestServer(t, true)
	h := srv.Routes()

	rec := do(t, h, http.MethodPost, "/v1/evaluate", []byte(`{
		"context": {"time_block": "afternoon", "top_need": "none", "trust_tier": "mid"},
		"text": "힘들었겠네요. 제가 도와드릴게요. 상담해드릴게요.",
		"case_id": "counselor",
		"max_score": 50
	}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp evaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.LessOrEqual(t, resp.Result.ScoreTotal, 50)
	require.NotNil(t, resp.Passed)
	assert.True(t, *resp.Passed)
	assert.NotEmpty(t, resp.Explain)
	require.NotEmpty(t, resp.RunID)

	evals, err := st.ListEvaluations(resp.RunID)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, "counselor", evals[0].CaseID)
}

func TestEvaluate_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t, false)
	h := srv.Routes()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/evaluate", []byte(`{`)).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/evaluate", []byte(`{"text": 42}`)).Code)
}

func TestEvaluate_EmptyOrMissingTextScoresBaseline(t *testing.T) {
	srv, _ := newTestServer(t, false)
	h := srv.Routes()

	bodies := map[string]string{
		"empty":   `{"text": ""}`,
		"missing": `{"context":{"top_need":"rest"}}`,
		"null":    `{"context":{},"text":null}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/evaluate", []byte(body))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var resp evaluateResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, scoring.DefaultBaseline, resp.Result.ScoreTotal)
			assert.Nil(t, resp.Passed)
		})
	}
}

func TestCheck_SeedFixture(t *testing.T) {
	srv, _ := newTestServer(t, false)
	body, err := json.Marshal(harness.Seed())
	require.NoError(t, err)

	rec := do(t, srv.Routes(), http.MethodPost, "/v1/check", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Summary harness.Summary `json:"summary"`
		Cases   []caseOutcome   `json:"cases"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Summary.Passed)
	require.Len(t, resp.Cases, 6)
	assert.Equal(t, "sleepy-rest", resp.Cases[0].ID)

	bad := do(t, srv.Routes(), http.MethodPost, "/v1/check", []byte(`{"cases":[{"text":"x"}]}`))
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestRuns(t *testing.T) {
	srv, _ := newTestServer(t, true)
	h := srv.Routes()

	do(t, h, http.MethodPost, "/v1/evaluate", []byte(`{"text": "졸려냥"}`))

	rec := do(t, h, http.MethodGet, "/v1/runs?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []store.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Evaluations)

	rec = do(t, h, http.MethodGet, "/v1/runs/"+runs[0].RunID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Run         store.Run          `json:"run"`
		Evaluations []store.Evaluation `json:"evaluations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, runs[0].RunID, detail.Run.RunID)
	assert.Len(t, detail.Evaluations, 1)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/runs/missing", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/v1/runs?limit=abc", nil).Code)
}

func TestRuns_DisabledWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t, false)
	rec := do(t, srv.Routes(), http.MethodGet, "/v1/runs", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
