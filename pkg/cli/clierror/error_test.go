// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package clierror

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logger struct {
	TB       testing.TB
	Severity log.Severity
	Err      error
}

func (l *logger) Log(_ context.Context, sev log.Severity, msg string, args ...interface{}) {
	require.Equal(l.TB, 1, len(args), "expected to log one item")
	err, ok := args[0].(error)
	require.True(l.TB, ok, "expected to log an error")
	l.Severity = sev
	l.Err = err
}

func TestErrorReporting(t *testing.T) {
	tests := []struct {
		desc         string
		err          error
		wantSeverity log.Severity
		wantCLICause bool // should the cause be an *Error?
		wantExitCode exit.Code
	}{
		{
			desc:         "plain",
			err:          errors.New("boom"),
			wantSeverity: log.SeverityError,
			wantCLICause: false,
			wantExitCode: exit.UnspecifiedError(),
		},
		{
			desc: "single cliError",
			err: NewErrorWithSeverity(
				errors.New("routine"),
				exit.DocumentsRejected(),
				log.SeverityWarning,
			),
			wantSeverity: log.SeverityWarning,
			wantCLICause: false,
			wantExitCode: exit.DocumentsRejected(),
		},
		{
			desc: "double cliError",
			err: NewErrorWithSeverity(
				NewError(errors.New("serious"), exit.CommandLineFlagError()),
				exit.InvalidShape(),
				log.SeverityInfo,
			),
			wantSeverity: log.SeverityInfo, // should only unwrap one layer
			wantCLICause: true,
			wantExitCode: exit.InvalidShape(),
		},
		{
			desc: "wrapped cliError",
			err: fmt.Errorf("some context: %w", NewErrorWithSeverity(
				errors.New("routine"),
				exit.InvalidShape(),
				log.SeverityInfo,
			)),
			wantSeverity: log.SeverityInfo,
			wantCLICause: false,
			wantExitCode: exit.InvalidShape(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := &logger{TB: t}
			checked := CheckAndMaybeLog(tt.err, got.Log)
			assert.Equal(t, tt.err, checked, "should return error unchanged")
			assert.Equal(t, tt.wantSeverity, got.Severity, "wrong severity log")
			gotCLI := errors.HasType(got.Err, (*Error)(nil))
			if tt.wantCLICause {
				assert.True(t, gotCLI, "logged cause should be *Error, got %T", got.Err)
			} else {
				assert.False(t, gotCLI, "logged cause shouldn't be *Error, got %T", got.Err)
			}
			assert.Equal(t, tt.wantExitCode, ExitCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("3 documents failed")
	err := NewError(cause, exit.DocumentsRejected())
	require.EqualError(t, err, "3 documents failed")
	require.True(t, errors.Is(err, cause))
	require.Equal(t, "3 documents failed", fmt.Sprintf("%v", err))
	require.Nil(t, CheckAndMaybeLog(nil, func(context.Context, log.Severity, string, ...interface{}) {
		t.Fatal("nothing to log")
	}))
	require.Equal(t, exit.Success(), ExitCode(nil))
}
