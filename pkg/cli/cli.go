// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the wkt-mapper command line tool.
package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"text/tabwriter"

	"github.com/cockroachdb/mapper-wkt/pkg/cli/clierror"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/mapper"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/spf13/cobra"
)

// Proxy to allow overrides in tests.
var osStderr = os.Stderr

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "output version information",
	Long: `
Output build version information.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 1, 2, ' ', 0)
		fmt.Fprintf(tw, "Plugin:\t%s\n", mapper.PluginName)
		fmt.Fprintf(tw, "Types:\t%v\n", mapper.RegisteredTypes())
		fmt.Fprintf(tw, "Go Version:\t%s\n", runtime.Version())
		fmt.Fprintf(tw, "Platform:\t%s %s/%s\n", runtime.Compiler, runtime.GOOS, runtime.GOARCH)
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintf(tw, "Module:\t%s %s\n", info.Main.Path, info.Main.Version)
		}
		_ = tw.Flush()
	},
}

var wktMapperCmd = &cobra.Command{
	Use:   "wkt-mapper [command] (flags)",
	Short: "parse WKT shapes and map them to indexable fields",
	Long: mapper.PluginDescription + `.

Shapes are read as Well-Known Text and turned into the fields a search
index stores for a wkt mapped field.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.EnableCommandSorting = false

	wktMapperCmd.AddCommand(
		parseCmd,
		emitCmd,
		indexCmd,

		// Miscellaneous commands.
		optionsCmd,
		versionCmd,
	)
}

// Main is the entry point of the wkt-mapper binary.
func Main() {
	defer func() {
		if r := recover(); r != nil {
			exit.WithCode(reportPanic(context.Background(), r))
		}
	}()
	err := clierror.CheckAndMaybeLog(Run(os.Args[1:]), log.Logf)
	exit.WithCode(clierror.ExitCode(err))
}

// reportPanic logs a recovered panic along with the stack of the panicking
// goroutine and returns the exit code for it.
func reportPanic(ctx context.Context, r interface{}) exit.Code {
	log.Errorf(ctx, "a panic has occurred: %v\n%s", r, debug.Stack())
	return exit.UnspecifiedGoPanic()
}

// Run runs the command line with args.
func Run(args []string) error {
	initCLIDefaults()
	resetFlagsChanged(wktMapperCmd)
	defer func() { resetLogging() }()
	wktMapperCmd.SetArgs(args)
	return wktMapperCmd.Execute()
}
