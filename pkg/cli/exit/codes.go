// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exit

// Codes that are common to all commands follow.

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition. The specific cause of the error can be found in
// the logging output.
func UnspecifiedError() Code { return Code{1} }

// UnspecifiedGoPanic (2) indicates the process has terminated due to
// an uncaught Go panic or some other error in the Go runtime.
func UnspecifiedGoPanic() Code { return Code{2} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters.
func CommandLineFlagError() Code { return Code{4} }

// Command-specific exit codes are allocated down from 125.

// 'parse' and 'emit' exit codes.

// InvalidShape indicates that at least one input value could not be
// parsed or mapped.
func InvalidShape() Code { return Code{125} }

// 'index' exit codes.

// DocumentsRejected indicates that at least one document was rejected
// while the others were indexed.
func DocumentsRejected() Code { return Code{124} }
