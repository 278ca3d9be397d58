// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package clierror attaches exit codes and log severities to the errors of
// CLI commands.
package clierror

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
)

// Error is an error with an exit code and the severity it is reported
// with.
type Error struct {
	exitCode exit.Code
	severity log.Severity
	cause    error
}

// NewError wraps cause with an exit code. It is reported as an error.
func NewError(cause error, exitCode exit.Code) error {
	return NewErrorWithSeverity(cause, exitCode, log.SeverityError)
}

// NewErrorWithSeverity wraps cause with an exit code and a severity.
func NewErrorWithSeverity(cause error, exitCode exit.Code, severity log.Severity) error {
	return &Error{exitCode: exitCode, severity: severity, cause: cause}
}

// GetExitCode returns the exit code of the error.
func (e *Error) GetExitCode() exit.Code { return e.exitCode }

// GetSeverity returns the severity the error is reported with.
func (e *Error) GetSeverity() log.Severity { return e.severity }

// Error implements the error interface.
func (e *Error) Error() string { return e.cause.Error() }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the Go 1.13 unwrap interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %s", e.exitCode)
	}
	return e.cause
}

// ExitCode returns the exit code of the first *Error in err's chain, or
// exit.UnspecifiedError. A nil error is exit.Success.
func ExitCode(err error) exit.Code {
	if err == nil {
		return exit.Success()
	}
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.exitCode
	}
	return exit.UnspecifiedError()
}

// LoggerFn logs a message with a severity.
type LoggerFn = func(ctx context.Context, sev log.Severity, msg string, args ...interface{})

// CheckAndMaybeLog reports err through logger and returns it unchanged. An
// *Error in the chain decides the severity and its cause is what gets
// logged.
func CheckAndMaybeLog(err error, logger LoggerFn) error {
	if err == nil {
		return nil
	}
	severity := log.SeverityError
	cause := err
	var cliErr *Error
	if errors.As(err, &cliErr) {
		severity = cliErr.severity
		cause = cliErr.cause
	}
	logger(context.Background(), severity, "%v", cause)
	return err
}
