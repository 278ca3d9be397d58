// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/clierror"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/mapper"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/spf13/cobra"
)

// maxLineSize bounds a single line of input.
const maxLineSize = 16 << 20

// forEachInput calls fn with every argument, or with every non-blank line of
// r when there are no arguments.
func forEachInput(r io.Reader, args []string, fn func(input string)) error {
	if len(args) > 0 {
		for _, arg := range args {
			fn(arg)
		}
		return nil
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	return errors.Wrap(scanner.Err(), "reading input")
}

// loadDocumentMapper builds the document mapper of the --mapping file.
func loadDocumentMapper(
	ctx context.Context, cmd *cobra.Command, metrics *mapper.Metrics,
) (*mapper.DocumentMapper, error) {
	if mappingCtx.mappingPath == "" {
		return nil, clierror.NewError(
			errors.Newf("%s requires --mapping", cmd.Name()), exit.CommandLineFlagError())
	}
	m, err := mapper.LoadMapping(mappingCtx.mappingPath)
	if err != nil {
		return nil, err
	}
	return m.Build(ctx, metrics)
}

// failedInputs returns the error of a command that could not handle some
// of its inputs.
func failedInputs(code exit.Code, failed int, what string) error {
	if failed == 0 {
		return nil
	}
	return clierror.NewErrorWithSeverity(
		errors.Newf("%d %s failed", failed, what), code, log.SeverityWarning)
}
