// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cliflags names and documents the command line flags of the
// wkt-mapper tool.
package cliflags

import "fmt"

// FlagInfo contains the static information for a CLI flag.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string
	// Shorthand is the one-character shorthand for the flag, if any.
	Shorthand string
	// EnvVar is the environment variable that provides the default value
	// of the flag, if any.
	EnvVar string
	// Description of the flag.
	Description string
}

// Usage returns the description, mentioning the environment variable when
// there is one.
func (f FlagInfo) Usage() string {
	if f.EnvVar == "" {
		return f.Description
	}
	return fmt.Sprintf("%s\nEnvironment variable: %s", f.Description, f.EnvVar)
}

// Flags common to every command.
var (
	LogFormat = FlagInfo{
		Name:        "log-format",
		EnvVar:      "WKT_MAPPER_LOG_FORMAT",
		Description: `Format of log entries written to stderr: console or json.`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		EnvVar:      "WKT_MAPPER_VERBOSITY",
		Description: `Verbosity of event logging. Level 1 logs rejected values, level 2 every value.`,
	}

	RedactableLogs = FlagInfo{
		Name:        "redactable-logs",
		Description: `Mark user data in log entries so it can be stripped later.`,
	}
)

// Flags of the parse command.
var (
	Format = FlagInfo{
		Name:        "format",
		Shorthand:   "f",
		Description: `Output format: wkt, ewkt, geojson, wkb, kml or geohash.`,
	}

	Digits = FlagInfo{
		Name:        "digits",
		Description: `Maximum number of decimal digits written for coordinates. Negative keeps full precision.`,
	}

	SRID = FlagInfo{
		Name:        "srid",
		Description: `SRID assigned to shapes that do not carry an SRID= prefix.`,
	}

	Coerce = FlagInfo{
		Name:        "coerce",
		Description: `Close unclosed polygon rings instead of rejecting them.`,
	}

	ByteOrder = FlagInfo{
		Name:        "byte-order",
		Description: `Byte order of WKB output: ndr (little endian) or xdr (big endian).`,
	}
)

// Flags of the emit and index commands.
var (
	Mapping = FlagInfo{
		Name:        "mapping",
		Shorthand:   "m",
		EnvVar:      "WKT_MAPPER_MAPPING",
		Description: `Path of the YAML or JSON mapping file declaring the wkt fields.`,
	}

	Field = FlagInfo{
		Name:        "field",
		Description: `Name of the mapped field to emit for.`,
	}

	ShowTerms = FlagInfo{
		Name:        "terms",
		Description: `Print the indexed terms of every field after indexing.`,
	}

	ShowMetrics = FlagInfo{
		Name:        "metrics",
		Description: `Print the mapper metrics in the Prometheus text format after indexing.`,
	}
)
