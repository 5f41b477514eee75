package service

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tufitko/minmaxheap/pkg/labels"
	"github.com/tufitko/minmaxheap/pkg/logging"
)

const readHeaderTimeout = 10 * time.Second

var ready, alive atomic.Bool

func init() {
	alive.Store(true)
}

func SetReady(state bool) { ready.Store(state) }
func IsReady() bool       { return ready.Load() }
func SetAlive(state bool) { alive.Store(state) }
func IsAlive() bool       { return alive.Load() }

// probe answers 204 while check holds and 503 otherwise.
func probe(check func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if check() {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	}
}

// connTracker keeps the current state of every open connection and exports
// per-state totals.
type connTracker struct {
	mu      sync.Mutex
	conns   map[net.Conn]http.ConnState
	changes *prometheus.CounterVec
	current *prometheus.GaugeVec
}

func newConnTracker(addr string) *connTracker {
	constLabels := make(map[string]string, len(labels.Labels)+1)
	for name, value := range labels.Labels {
		constLabels[name] = value
	}
	constLabels["addr"] = addr

	return &connTracker{
		conns: make(map[net.Conn]http.ConnState),
		changes: registerOrReuse(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "http_server",
			Name:        "connection_state_changes_total",
			Help:        "Connection state changes count",
			ConstLabels: constLabels,
		}, []string{"state"})).(*prometheus.CounterVec),
		current: registerOrReuse(prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   "http_server",
			Name:        "connections_total",
			Help:        "Connections count by states",
			ConstLabels: constLabels,
		}, []string{"state"})).(*prometheus.GaugeVec),
	}
}

func (t *connTracker) track(conn net.Conn, state http.ConnState) {
	t.changes.WithLabelValues(state.String()).Inc()

	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.conns[conn]; ok {
		t.current.WithLabelValues(prev.String()).Dec()
	}
	if state == http.StateClosed || state == http.StateHijacked {
		delete(t.conns, conn)
		return
	}
	t.conns[conn] = state
	t.current.WithLabelValues(state.String()).Inc()
}

// registerOrReuse returns the collector already registered under the same
// descriptor when a server is recreated for an address.
func registerOrReuse(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// HTTPServer serves a router next to the /healthz and /readyz probes.
type HTTPServer struct {
	Server          *http.Server
	shutdownTimeout time.Duration
	done            chan struct{}
}

func NewHTTPServer(addr string, shutdownTimeout time.Duration, router http.Handler) *HTTPServer {
	mux := http.NewServeMux()
	mux.Handle("/", router)
	mux.HandleFunc("/healthz", probe(IsAlive))
	mux.HandleFunc("/readyz", probe(IsReady))

	tracker := newConnTracker(addr)
	return &HTTPServer{
		Server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
			ConnState:         tracker.track,
		},
		shutdownTimeout: shutdownTimeout,
		done:            make(chan struct{}),
	}
}

func (s *HTTPServer) Start() {
	log := logging.WithField("address", s.Server.Addr)
	go func() {
		defer close(s.done)
		log.Info("starting http server")
		if err := s.Server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failure")
		}
		log.Info("http server stopped listening")
	}()
}

// Stop shuts down gracefully within shutdownTimeout and waits for Start's
// goroutine to return.
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.Server.Shutdown(ctx); err != nil {
		logging.WithError(err).Error("http shutdown error")
	}
	<-s.done
	logging.WithField("address", s.Server.Addr).Info("http server stopped")
}
