// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Format names an output format of the sink.
type Format string

const (
	// FormatConsole writes human readable lines.
	FormatConsole Format = "console"
	// FormatJSON writes one JSON object per entry.
	FormatJSON Format = "json"
)

// TagsKey is the JSON key under which the context tags of an entry are
// written.
const TagsKey = "tags"

type sink struct {
	logger     zerolog.Logger
	redactable bool
}

var activeSink atomic.Pointer[sink]

func init() {
	activeSink.Store(newSink(os.Stderr, FormatConsole, false /* redactable */))
}

func currentSink() *sink {
	return activeSink.Load()
}

func newSink(w io.Writer, format Format, redactable bool) *sink {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return &sink{
		logger:     zerolog.New(w).With().Timestamp().Logger(),
		redactable: redactable,
	}
}

func (s *sink) output(sev Severity, tags string, msg string) {
	var e *zerolog.Event
	switch sev {
	case SeverityWarning:
		e = s.logger.Warn()
	case SeverityError:
		e = s.logger.Error()
	default:
		e = s.logger.Info()
	}
	if tags != "" {
		e = e.Str(TagsKey, tags)
	}
	e.Msg(msg)
}
