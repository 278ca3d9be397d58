// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Config configures the logging sink.
type Config struct {
	// Output receives log entries. Defaults to stderr.
	Output io.Writer
	// Format is the output format. Defaults to FormatConsole.
	Format Format
	// Redactable keeps redaction markers around unsafe values.
	Redactable bool
	// Verbosity is the maximum level logged by VEventf.
	Verbosity Level
}

// ApplyConfig replaces the logging sink. The returned function restores
// the previous sink and verbosity.
func ApplyConfig(config Config) (resFn func(), err error) {
	if config.Output == nil {
		config.Output = os.Stderr
	}
	switch config.Format {
	case "":
		config.Format = FormatConsole
	case FormatConsole, FormatJSON:
	default:
		return nil, errors.Newf("unknown log format %q", config.Format)
	}
	if config.Verbosity < 0 {
		return nil, errors.Newf("invalid verbosity %d", config.Verbosity)
	}

	prevSink := activeSink.Swap(newSink(config.Output, config.Format, config.Redactable))
	prevVerbosity := Level(verbosity.Swap(int32(config.Verbosity)))
	return func() {
		activeSink.Store(prevSink)
		SetVerbosity(prevVerbosity)
	}, nil
}
