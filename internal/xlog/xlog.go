// Package xlog carries dc4eu-vc's logging stack (go-logr fronting
// zap via zapr) into the identity engine. None of the core APIs require a
// logger -- a nil *Log is always safe to call methods on -- but storage
// backends and the resolver accept one for diagnostic tracing of their
// suspension points.
package xlog

import (
	"go.uber.org/zap"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
)

// Log mirrors dc4eu-vc's pkg/logger.Log wrapper around logr.Logger.
type Log struct {
	logr.Logger
	valid bool
}

// New builds a production-mode logger named for the calling component.
func New(name string) *Log {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return &Log{Logger: zapr.NewLogger(z).WithName(name), valid: true}
}

// NewDevelopment builds a development-mode logger with human-readable
// console output, for tests and local experimentation.
func NewDevelopment(name string) *Log {
	z, err := zap.NewDevelopment()
	if err != nil {
		z = zap.NewNop()
	}
	return &Log{Logger: zapr.NewLogger(z).WithName(name), valid: true}
}

// Named returns a sub-logger scoped under path, or a no-op logger if l is
// nil -- callers never need to nil-check before chaining.
func (l *Log) Named(path string) *Log {
	if l == nil || !l.valid {
		return nil
	}
	return &Log{Logger: l.WithName(path), valid: true}
}

// Info logs at the default verbosity. Safe to call on a nil *Log.
func (l *Log) Info(msg string, keysAndValues ...interface{}) {
	if l == nil || !l.valid {
		return
	}
	l.Logger.V(0).Info(msg, keysAndValues...)
}

// Debug logs at verbosity 1. Safe to call on a nil *Log.
func (l *Log) Debug(msg string, keysAndValues ...interface{}) {
	if l == nil || !l.valid {
		return
	}
	l.Logger.V(1).Info(msg, keysAndValues...)
}

// Trace logs at verbosity 2, for per-suspension-point diagnostics. Safe to
// call on a nil *Log.
func (l *Log) Trace(msg string, keysAndValues ...interface{}) {
	if l == nil || !l.valid {
		return
	}
	l.Logger.V(2).Info(msg, keysAndValues...)
}

// Error logs an error with the failing operation's message. Safe to call on
// a nil *Log.
func (l *Log) Error(err error, msg string, keysAndValues ...interface{}) {
	if l == nil || !l.valid {
		return
	}
	l.Logger.Error(err, msg, keysAndValues...)
}
