// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log is a small context-aware logging facade. Messages are
// formatted with redaction markers around unsafe arguments, annotated with
// the log tags found in the context, and written through a zerolog sink.
package log

import (
	"context"
	"sync/atomic"
)

// Severity is the severity of a log entry.
type Severity int

// The severities, in increasing order.
const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Level is a verbosity level for V and VEventf.
type Level int32

var verbosity atomic.Int32

// SetVerbosity sets the global verbosity. Messages logged with VEventf at a
// level above it are dropped.
func SetVerbosity(level Level) {
	verbosity.Store(int32(level))
}

// V returns whether messages at the given verbosity level are logged.
func V(level Level) bool {
	return Level(verbosity.Load()) >= level
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityInfo, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityWarning, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityError, format, args)
}

// Logf logs to the given severity.
func Logf(ctx context.Context, sev Severity, format string, args ...interface{}) {
	addStructured(ctx, sev, format, args)
}

// VEventf logs to the INFO severity if the verbosity is at least level.
func VEventf(ctx context.Context, level Level, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, SeverityInfo, format, args)
	}
}
