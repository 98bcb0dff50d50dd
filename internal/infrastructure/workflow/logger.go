package workflow

import (
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// Logger adapts zap to the Temporal SDK logger
type Logger struct {
	s *zap.SugaredLogger
}

// NewLogger wraps a zap logger for the Temporal client
func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{s: logger.Named("temporal").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) { l.s.Debugw(msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...interface{})  { l.s.Infow(msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...interface{})  { l.s.Warnw(msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...interface{}) { l.s.Errorw(msg, keyvals...) }

// With returns a logger carrying keyvals on every line
func (l *Logger) With(keyvals ...interface{}) log.Logger {
	return &Logger{s: l.s.With(keyvals...)}
}

var (
	_ log.Logger     = (*Logger)(nil)
	_ log.WithLogger = (*Logger)(nil)
)
