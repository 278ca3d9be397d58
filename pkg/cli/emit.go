// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/clierror"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/mapper"
	"github.com/spf13/cobra"
)

var emitCmd = &cobra.Command{
	Use:   "emit --mapping <file> [--field <name>] [wkt...]",
	Short: "print the indexable fields of WKT shapes",
	Long: `
Map each argument, or each line of standard input when no argument is
given, with the wkt field --field of the mapping and print the fields it
produces, one per line. --field may be omitted when the mapping declares a
single field.
`,
	RunE: runEmit,
}

func runEmit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	dm, err := loadDocumentMapper(ctx, cmd, nil /* metrics */)
	if err != nil {
		return err
	}
	fm, err := selectField(dm)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed int
	if err := forEachInput(cmd.InOrStdin(), args, func(input string) {
		fields, err := fm.Parse(ctx, input)
		if err != nil {
			failed++
			fmt.Fprintf(errOut, "error: %v\n", err)
			return
		}
		if len(fields) == 0 {
			fmt.Fprintln(out, "(no fields)")
		}
		for _, f := range fields {
			fmt.Fprintln(out, f)
		}
	}); err != nil {
		return err
	}
	return failedInputs(exit.InvalidShape(), failed, "shapes")
}

func selectField(dm *mapper.DocumentMapper) (*mapper.FieldMapper, error) {
	if mappingCtx.field == "" {
		mappers := dm.FieldMappers()
		if len(mappers) == 1 {
			return mappers[0], nil
		}
		return nil, clierror.NewError(
			errors.Newf("the mapping declares %d fields, select one with --field", len(mappers)),
			exit.CommandLineFlagError())
	}
	fm, ok := dm.FieldMapper(mappingCtx.field)
	if !ok {
		return nil, clierror.NewError(
			errors.Newf("field [%s] is not declared in the mapping", mappingCtx.field),
			exit.CommandLineFlagError())
	}
	return fm, nil
}
