// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// formatTags renders the log tags of ctx as a comma separated list of
// key=value pairs. Tags without a value render as their key.
func formatTags(ctx context.Context) string {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return ""
	}
	var buf strings.Builder
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.ValueStr(); v != "" {
			buf.WriteByte('=')
			buf.WriteString(v)
		}
	}
	return buf.String()
}

// makeMessage formats the entry message. Arguments not marked safe are
// enclosed in redaction markers when the sink is redactable, and printed
// plainly otherwise.
func makeMessage(redactable bool, format string, args []interface{}) string {
	var msg redact.RedactableString
	if len(args) == 0 {
		msg = redact.Sprint(redact.Safe(format))
	} else {
		msg = redact.Sprintf(format, args...)
	}
	if redactable {
		return string(msg)
	}
	return msg.StripMarkers()
}

// addStructured creates a structured log entry and writes it to the sink.
func addStructured(ctx context.Context, sev Severity, format string, args []interface{}) {
	s := currentSink()
	s.output(sev, formatTags(ctx), makeMessage(s.redactable, format, args))
}
