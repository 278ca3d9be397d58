// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package wkt

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// EmptyInput is returned for input that is empty after trimming.
	EmptyInput ErrorKind = iota + 1
	// UnknownKeyword is returned for a word that is not a geometry type,
	// EMPTY, or a dimension marker.
	UnknownKeyword
	// MalformedNumber is returned for a coordinate that is not a valid
	// floating point literal.
	MalformedNumber
	// MismatchedParens is returned when the input ends inside an open
	// parenthesis or closes one that was never opened.
	MismatchedParens
	// CoordinateArity is returned when a coordinate has the wrong number of
	// values for the layout of the geometry.
	CoordinateArity
	// UnexpectedToken is returned for a structurally misplaced token.
	UnexpectedToken
	// InvalidLineString is returned for a non-empty line string with fewer
	// than two points.
	InvalidLineString
	// InvalidRing is returned for a polygon ring that is not closed or has
	// fewer than four points.
	InvalidRing
	// DepthExceeded is returned when geometry collections nest deeper than
	// the configured limit.
	DepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case UnknownKeyword:
		return "UnknownKeyword"
	case MalformedNumber:
		return "MalformedNumber"
	case MismatchedParens:
		return "MismatchedParens"
	case CoordinateArity:
		return "CoordinateArity"
	case UnexpectedToken:
		return "UnexpectedToken"
	case InvalidLineString:
		return "InvalidLineString"
	case InvalidRing:
		return "InvalidRing"
	case DepthExceeded:
		return "DepthExceeded"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is an error that occurs while lexing or parsing WKT. The
// parser stops at the first one it encounters.
type ParseError struct {
	Kind    ErrorKind
	Pos     int
	Input   string
	Message string
	Hint    string
}

func (e *ParseError) Error() string {
	// TODO(wkt): print only the line containing Pos for multi-line input.
	err := fmt.Sprintf("%s at pos %d\n%s\n%s^", e.Message, e.Pos, e.Input, strings.Repeat(" ", e.Pos))
	if e.Hint != "" {
		err += fmt.Sprintf("\nHINT: %s", e.Hint)
	}
	return err
}

// KindOf returns the kind of the first ParseError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
