package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

var (
	// DefaultLogger is the process-wide logger, JSON formatted.
	DefaultLogger = newServiceLogger()
	// NilLogger drops everything. Tests and library defaults only.
	NilLogger = newServiceLogger()
)

func init() {
	DefaultLogger.SetFormatter(FormatterJSON)
	NilLogger.SetOutput(io.Discard)
}

func SetLevel(level Level)     { DefaultLogger.SetLevel(level) }
func GetLevel() Level          { return DefaultLogger.GetLevel() }
func SetOutput(w io.Writer)    { DefaultLogger.SetOutput(w) }
func SetFormatter(f Formatter) { DefaultLogger.SetFormatter(f) }

// Log writes at the given level without exiting on Fatal.
func Log(level Level, args ...interface{}) {
	DefaultLogger.Log(level, args...)
}

// SetDefaultFields replaces the fields attached to every DefaultLogger entry.
func SetDefaultFields(fields Fields) {
	DefaultLogger.entry.Data = logrus.Fields(fields)
}

func ParseLevel(lvl string) (Level, error) {
	level, err := logrus.ParseLevel(lvl)
	return Level(level), err
}

func WithField(key string, value interface{}) *ServiceLogger {
	return DefaultLogger.WithField(key, value)
}

func WithFields(fields Fields) *ServiceLogger { return DefaultLogger.WithFields(fields) }
func WithError(err error) *ServiceLogger      { return DefaultLogger.WithError(err) }

func Info(args ...interface{})  { DefaultLogger.Info(args...) }
func Fatal(args ...interface{}) { DefaultLogger.Fatal(args...) }
