package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tufitko/minmaxheap/pkg/encoding/json"
	"github.com/tufitko/minmaxheap/pkg/logging"

	//nolint
	_ "net/http/pprof"
)

var serviceInfo map[string]string

func SetInfo(info map[string]string) {
	serviceInfo = info
}

type DiagnosticServerConfig struct {
	StateHandler http.HandlerFunc
}

// StartDiagnosticsServerWithConfig serves DiagnosticsHandler on addr in the
// background.
func StartDiagnosticsServerWithConfig(addr string, cfg DiagnosticServerConfig) {
	NewHTTPServer(addr, 0, DiagnosticsHandler(cfg)).Start()
}

func marshalError(err error) string {
	buf, mErr := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
	if mErr != nil {
		logging.WithError(mErr).Error("failed to marshal response")
	}
	return string(buf)
}

// DiagnosticsHandler serves /metrics, /info, /logger, pprof and, when set,
// the state handler under /state/.
func DiagnosticsHandler(cfg DiagnosticServerConfig) http.Handler {
	jsonInfo, err := json.Marshal(serviceInfo)
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	mux.HandleFunc("/info", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(jsonInfo); err != nil {
			logging.WithError(err).Error("failed to write http response")
		}
	})
	mux.HandleFunc("/logger", setLogLevel)
	if cfg.StateHandler != nil {
		mux.Handle("/state/", cfg.StateHandler)
	}
	return mux
}

// levelRequest is the query of /logger, e.g. ?level=debug&duration=5m.
type levelRequest struct {
	level    logging.Level
	duration time.Duration
}

func parseLevelRequest(r *http.Request) (levelRequest, error) {
	var req levelRequest
	q := r.URL.Query()
	if q.Get("duration") == "" {
		return req, errors.New("duration should not be empty")
	}
	var err error
	if req.duration, err = time.ParseDuration(q.Get("duration")); err != nil {
		return req, errors.Wrap(err, "duration")
	}
	if req.level, err = logging.ParseLevel(q.Get("level")); err != nil {
		return req, errors.Wrap(err, "level")
	}
	return req, nil
}

// setLogLevel switches the log level until the requested duration passes.
func setLogLevel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	req, err := parseLevelRequest(r)
	if err == nil {
		err = logging.SetLevelTemporary(req.level, req.duration)
	}
	if err != nil {
		http.Error(w, marshalError(err), http.StatusBadRequest)
		return
	}

	logging.Log(req.level, fmt.Sprintf("log level %s is set for %s", req.level, req.duration))
	if err = json.NewEncoder(w).Encode(map[string]string{
		"level":    logging.GetLevel().String(),
		"duration": req.duration.String(),
	}); err != nil {
		logging.WithError(err).Error("failed to write http response")
	}
}
