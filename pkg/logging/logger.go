package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured log fields.
type Fields map[string]interface{}

// Level mirrors logrus levels so callers never import logrus directly.
type Level logrus.Level

const (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

func (l Level) String() string {
	return logrus.Level(l).String()
}

// Formatter renders log entries.
type Formatter = logrus.Formatter

var (
	FormatterJSON Formatter = &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"}
	FormatterText Formatter = &logrus.TextFormatter{FullTimestamp: true}
)

// Logger is the logging handle components keep.
type Logger interface {
	WithField(key string, value interface{}) *ServiceLogger
	WithFields(fields Fields) *ServiceLogger
	WithError(err error) *ServiceLogger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ServiceLogger is a logrus entry bound to its logger.
type ServiceLogger struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

func newServiceLogger() *ServiceLogger {
	l := logrus.New()
	return &ServiceLogger{
		logger: l,
		entry:  logrus.NewEntry(l),
	}
}

// New returns a standalone logger writing JSON to out at the given level.
func New(out io.Writer, level Level) *ServiceLogger {
	l := newServiceLogger()
	l.SetOutput(out)
	l.SetFormatter(FormatterJSON)
	l.SetLevel(level)
	return l
}

func (s *ServiceLogger) SetLevel(level Level)     { s.logger.SetLevel(logrus.Level(level)) }
func (s *ServiceLogger) GetLevel() Level          { return Level(s.logger.GetLevel()) }
func (s *ServiceLogger) SetOutput(w io.Writer)    { s.logger.SetOutput(w) }
func (s *ServiceLogger) SetFormatter(f Formatter) { s.logger.SetFormatter(f) }

func (s *ServiceLogger) derive(e *logrus.Entry) *ServiceLogger {
	return &ServiceLogger{logger: s.logger, entry: e}
}

func (s *ServiceLogger) WithField(key string, value interface{}) *ServiceLogger {
	return s.derive(s.entry.WithField(key, value))
}

func (s *ServiceLogger) WithFields(fields Fields) *ServiceLogger {
	return s.derive(s.entry.WithFields(logrus.Fields(fields)))
}

func (s *ServiceLogger) WithError(err error) *ServiceLogger {
	return s.derive(s.entry.WithError(err))
}

func (s *ServiceLogger) Debug(args ...interface{}) { s.entry.Debug(args...) }
func (s *ServiceLogger) Info(args ...interface{})  { s.entry.Info(args...) }
func (s *ServiceLogger) Print(args ...interface{}) { s.entry.Print(args...) }
func (s *ServiceLogger) Warn(args ...interface{})  { s.entry.Warn(args...) }
func (s *ServiceLogger) Error(args ...interface{}) { s.entry.Error(args...) }
func (s *ServiceLogger) Fatal(args ...interface{}) { s.entry.Fatal(args...) }
func (s *ServiceLogger) Panic(args ...interface{}) { s.entry.Panic(args...) }

// Log writes at level. Unlike Fatal it does not exit.
func (s *ServiceLogger) Log(level Level, args ...interface{}) {
	s.entry.Log(logrus.Level(level), args...)
}

func (s *ServiceLogger) Debugf(format string, args ...interface{}) { s.entry.Debugf(format, args...) }
func (s *ServiceLogger) Infof(format string, args ...interface{})  { s.entry.Infof(format, args...) }
func (s *ServiceLogger) Warnf(format string, args ...interface{})  { s.entry.Warnf(format, args...) }
func (s *ServiceLogger) Errorf(format string, args ...interface{}) { s.entry.Errorf(format, args...) }
func (s *ServiceLogger) Fatalf(format string, args ...interface{}) { s.entry.Fatalf(format, args...) }
