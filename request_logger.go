package client

import "github.com/sirupsen/logrus"

// RequestLogger is the interface used by [Client] for logging HTTP requests
// and errors. Implement this interface to integrate with your logging library
// and supply the implementation via [WithRequestLogger].
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger is a [RequestLogger] that silently discards all log messages.
// It is the default logger used when no logger is provided to [New].
type NoopLogger struct{}

func (l *NoopLogger) Errorf(_ string, _ ...any) {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Debugf(_ string, _ ...any) {}

// LogrusLogger adapts a [logrus.Entry] to the [RequestLogger] interface.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps the given logrus logger, tagging every message with
// a component field.
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: logger.WithField("component", "storesight_client")}
}

func (l *LogrusLogger) Errorf(format string, v ...any) { l.entry.Errorf(format, v...) }
func (l *LogrusLogger) Warnf(format string, v ...any)  { l.entry.Warnf(format, v...) }
func (l *LogrusLogger) Debugf(format string, v ...any) { l.entry.Debugf(format, v...) }
