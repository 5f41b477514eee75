package service

import (
	"os"
	"syscall"
	"time"

	"github.com/tufitko/minmaxheap/pkg/labels"
	"github.com/tufitko/minmaxheap/pkg/logging"
)

// Init sets the process-wide labels and log format. Collectors built after
// Init carry the app and env labels.
func Init(appName, env string) {
	SetAlive(true)

	labels.Add(map[string]string{"app": appName, "env": env})
	SetInfo(labels.Labels)
	logging.SetDefaultFields(labels.GetLoggerLabels())

	if env == "dev" {
		logging.SetFormatter(logging.FormatterText)
	}

	logging.WithField("env", env).Info("initializing app")
}

type StartStopper interface {
	Start()
	Stop()
}

// Run starts services in order, waits for SIGTERM or SIGINT and stops them in
// reverse order. Readiness is only reported between the two.
func Run(services ...StartStopper) {
	started := time.Now()
	for _, s := range services {
		s.Start()
	}
	SetReady(true)
	logging.WithField("took", time.Since(started).String()).Info("app ready")

	sig := Wait([]os.Signal{syscall.SIGTERM, syscall.SIGINT})
	logging.WithField("signal", sig.String()).Info("stopping app")
	SetReady(false)
	for i := len(services) - 1; i >= 0; i-- {
		services[i].Stop()
	}
	logging.Info("bye")
}

// StartStopFunc adapts a pair of functions to StartStopper.
type StartStopFunc struct {
	StartFunc func()
	StopFunc  func()
}

func (s StartStopFunc) Start() {
	if s.StartFunc != nil {
		s.StartFunc()
	}
}

func (s StartStopFunc) Stop() {
	if s.StopFunc != nil {
		s.StopFunc()
	}
}
