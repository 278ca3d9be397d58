// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
)

// cliCtx captures the command-line parameters common to all commands.
var cliCtx struct {
	logFormat      string
	verbosity      int
	redactableLogs bool
}

// parseCtx captures the command-line parameters of the parse command.
var parseCtx struct {
	format    string
	digits    int
	srid      int
	coerce    bool
	byteOrder string
}

// mappingCtx captures the command-line parameters of the emit and index
// commands.
var mappingCtx struct {
	mappingPath string
	field       string
	showTerms   bool
	showMetrics bool
}

// initCLIDefaults sets the default value of every parameter. Tests run
// several commands in one process, so this is called before each run.
func initCLIDefaults() {
	cliCtx.logFormat = string(log.FormatConsole)
	cliCtx.verbosity = 0
	cliCtx.redactableLogs = false

	parseCtx.format = formatWKT
	parseCtx.digits = geo.FullPrecisionDecimalDigits
	parseCtx.srid = 0
	parseCtx.coerce = false
	parseCtx.byteOrder = "ndr"

	mappingCtx.mappingPath = ""
	mappingCtx.field = ""
	mappingCtx.showTerms = false
	mappingCtx.showMetrics = false
}
