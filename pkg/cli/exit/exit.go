// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exit defines the process exit codes of the wkt-mapper tool.
package exit

import (
	"fmt"
	"os"
)

// Code represents an exit code.
type Code struct {
	code int
}

// String implements the fmt.Stringer interface.
func (c Code) String() string { return fmt.Sprint(c.code) }

// Int returns the numeric value of the code.
func (c Code) Int() int { return c.code }

// WithCode terminates the process with the given code.
func WithCode(code Code) {
	os.Exit(code.code)
}
