package service_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tufitko/minmaxheap/pkg/encoding/json"
	"github.com/tufitko/minmaxheap/pkg/logging"
	"github.com/tufitko/minmaxheap/pkg/service"
)

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestDiagnosticsHandler(t *testing.T) {
	service.SetInfo(map[string]string{"app": "minmaxheap"})
	srv := httptest.NewServer(service.DiagnosticsHandler(service.DiagnosticServerConfig{
		StateHandler: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"elements":[3,1,2]}`))
		},
	}))
	defer srv.Close()

	resp, body := get(t, srv, "/info")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"app":"minmaxheap"}`, body)

	resp, body = get(t, srv, "/state/heap")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"elements":[3,1,2]}`, body)

	resp, _ = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDiagnosticsHandler_WithoutState(t *testing.T) {
	srv := httptest.NewServer(service.DiagnosticsHandler(service.DiagnosticServerConfig{}))
	defer srv.Close()

	resp, _ := get(t, srv, "/state/heap")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDiagnosticsHandler_Logger(t *testing.T) {
	srv := httptest.NewServer(service.DiagnosticsHandler(service.DiagnosticServerConfig{}))
	defer srv.Close()
	initial := logging.GetLevel()
	defer logging.SetLevel(initial)

	resp, _ := get(t, srv, "/logger?level=debug")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv, "/logger?level=fatal&duration=1m")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := get(t, srv, "/logger?level=debug&duration=1m")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "debug", out["level"])
	assert.Equal(t, "1m0s", out["duration"])
	assert.Equal(t, logging.DebugLevel, logging.GetLevel())
}

func TestStartStopFunc(t *testing.T) {
	var calls []string
	ss := service.StartStopFunc{
		StartFunc: func() { calls = append(calls, "start") },
		StopFunc:  func() { calls = append(calls, "stop") },
	}
	ss.Start()
	ss.Stop()
	service.StartStopFunc{}.Start()
	assert.Equal(t, []string{"start", "stop"}, calls)
}
