package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/testutils"
	httpadapter "github.com/aretw0/tracetm/pkg/adapters/http"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/aretw0/tracetm/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...httpadapter.ServerOption) http.Handler {
	t.Helper()
	eng, err := tracetm.New("", tracetm.WithDefinition(testutils.ContainsOneOne()))
	require.NoError(t, err)
	return httpadapter.NewHandler(eng, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := do(t, newServer(t), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	rr := do(t, newServer(t), "GET", "/info", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "tracetm-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, httpadapter.APIVersion, resp["api_version"])
	assert.Equal(t, "contains_11", resp["machine"])
}

func TestGetMachine(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, "GET", "/machine", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var def domain.Definition
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &def))
	assert.Equal(t, "contains_11", def.Name)
	assert.Len(t, def.Transitions, 5)

	rr = do(t, h, "GET", "/machine?format=mermaid", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "graph LR")
}

func TestSimulate_Single(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, "POST", "/simulate", `{"input":"0110","max_steps":20}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res runner.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.NotNil(t, res.Verdict)
	assert.Equal(t, domain.VerdictAccepted, res.Verdict.Kind)
	assert.Equal(t, 3, res.Verdict.Steps)
	assert.Empty(t, res.RunID, "no store configured")
}

func TestSimulate_Errors(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid symbol", `{"input":"012"}`, http.StatusUnprocessableEntity},
		{"bad json", `{"input":`, http.StatusBadRequest},
		{"no input", `{"max_steps":3}`, http.StatusBadRequest},
		{"both inputs", `{"input":"1","inputs":["1"]}`, http.StatusBadRequest},
		{"negative bound", `{"input":"1","max_steps":-1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, "POST", "/simulate", tt.body)
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
		})
	}

	rr := do(t, h, "POST", "/simulate", `{"input":"012"}`)
	var res runner.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "2 not found in alphabet: ['0', '1']", res.Error)
}

func TestSimulate_MaxStepsLimit(t *testing.T) {
	t.Run("Default limit", func(t *testing.T) {
		h := newServer(t)

		rr := do(t, h, "POST", "/simulate", `{"input":"1","max_steps":1001}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "exceeds limit of 1000")

		rr = do(t, h, "POST", "/simulate", `{"input":"1","max_steps":1000}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Configured limit", func(t *testing.T) {
		h := newServer(t, httpadapter.WithMaxStepsLimit(5))

		rr := do(t, h, "POST", "/simulate", `{"inputs":["1"],"max_steps":6}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "exceeds limit of 5")

		rr = do(t, h, "POST", "/simulate", `{"input":"1"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		var res runner.Result
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, 5, res.Verdict.MaxSteps, "the default bound is clamped to the limit")
	})
}

func TestSimulate_BatchAndRuns(t *testing.T) {
	store := memory.NewStore()
	h := newServer(t, httpadapter.WithStore(store))

	rr := do(t, h, "POST", "/simulate", `{"inputs":["11","_","2"],"max_steps":10}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var batch httpadapter.BatchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	assert.Equal(t, "contains_11", batch.Machine)
	require.Len(t, batch.Results, 3)
	assert.Equal(t, domain.VerdictAccepted, batch.Results[0].Verdict.Kind)
	assert.Equal(t, domain.VerdictRejected, batch.Results[1].Verdict.Kind)
	assert.NotEmpty(t, batch.Results[2].Error)

	rr = do(t, h, "GET", "/runs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list["runs"], 3)

	rr = do(t, h, "GET", "/runs/"+batch.Results[0].RunID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var record domain.RunRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, "11", record.Input)
	assert.Equal(t, domain.VerdictAccepted, record.Verdict.Kind)

	rr = do(t, h, "GET", "/runs/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRuns_NoStore(t *testing.T) {
	rr := do(t, newServer(t), "GET", "/runs", "")
	assert.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	m, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	eng, err := tracetm.New("", tracetm.WithDefinition(testutils.UnaryScan()), tracetm.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	h := httpadapter.NewHandler(eng, httpadapter.WithMetrics(m.Handler()))

	require.Equal(t, http.StatusOK, do(t, h, "POST", "/simulate", `{"input":"111"}`).Code)

	rr := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `tracetm_runs_total{machine="unary_scan",outcome="accepted"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	rr := do(t, newServer(t), "OPTIONS", "/simulate", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
