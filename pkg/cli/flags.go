// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/clierror"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/cliflags"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envVars maps flag names to the environment variable providing their
// default.
var envVars = map[string]string{}

// AddPersistentPreRunE add 'fn' as a persistent pre-run function to 'cmd'.
// If the command has an existing pre-run function, it is saved and will be called
// at the beginning of 'fn'.
func AddPersistentPreRunE(cmd *cobra.Command, fn func(*cobra.Command, []string) error) {
	// Save any existing hooks.
	wrapped := cmd.PersistentPreRunE

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Run the previous hook if it exists.
		if wrapped != nil {
			if err := wrapped(cmd, args); err != nil {
				return err
			}
		}

		// Now we can call the new function.
		return fn(cmd, args)
	}
}

func registerEnvVar(flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		envVars[flagInfo.Name] = flagInfo.EnvVar
	}
}

// setFlagsFromEnv sets every flag that was not given on the command line
// from its environment variable.
func setFlagsFromEnv(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVar, ok := envVars[f.Name]
		if !ok || f.Changed || err != nil {
			return
		}
		if value, set := os.LookupEnv(envVar); set {
			if setErr := f.Value.Set(value); setErr != nil {
				err = errors.Wrapf(setErr, "invalid value %q for %s", value, envVar)
			}
		}
	})
	return err
}

// resetFlagsChanged forgets which flags an earlier run set, so that
// environment defaults apply again.
func resetFlagsChanged(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlagsChanged(sub)
	}
}

// StringFlag creates a string flag and registers it with the FlagSet.
func StringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo, defaultVal string) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	registerEnvVar(flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func IntFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo, defaultVal int) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	registerEnvVar(flagInfo)
}

// BoolFlag creates a bool flag and registers it with the FlagSet.
func BoolFlag(f *pflag.FlagSet, valPtr *bool, flagInfo cliflags.FlagInfo, defaultVal bool) {
	f.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	registerEnvVar(flagInfo)
}

var resetLogging = func() {}

// setupLogging applies the logging flags. The previous configuration is
// restored when the command line has run.
func setupLogging(cmd *cobra.Command, _ []string) error {
	resFn, err := log.ApplyConfig(log.Config{
		Output:     osStderr,
		Format:     log.Format(cliCtx.logFormat),
		Redactable: cliCtx.redactableLogs,
		Verbosity:  log.Level(cliCtx.verbosity),
	})
	if err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	prev := resetLogging
	resetLogging = func() {
		resFn()
		resetLogging = prev
	}
	return nil
}

func init() {
	initCLIDefaults()

	AddPersistentPreRunE(wktMapperCmd, func(cmd *cobra.Command, _ []string) error {
		if err := setFlagsFromEnv(cmd); err != nil {
			return clierror.NewError(err, exit.CommandLineFlagError())
		}
		return nil
	})
	AddPersistentPreRunE(wktMapperCmd, setupLogging)
	wktMapperCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierror.NewError(err, exit.CommandLineFlagError())
	})

	{
		pf := wktMapperCmd.PersistentFlags()
		StringFlag(pf, &cliCtx.logFormat, cliflags.LogFormat, cliCtx.logFormat)
		IntFlag(pf, &cliCtx.verbosity, cliflags.Verbosity, cliCtx.verbosity)
		BoolFlag(pf, &cliCtx.redactableLogs, cliflags.RedactableLogs, cliCtx.redactableLogs)
	}

	{
		f := parseCmd.Flags()
		StringFlag(f, &parseCtx.format, cliflags.Format, parseCtx.format)
		IntFlag(f, &parseCtx.digits, cliflags.Digits, parseCtx.digits)
		IntFlag(f, &parseCtx.srid, cliflags.SRID, parseCtx.srid)
		BoolFlag(f, &parseCtx.coerce, cliflags.Coerce, parseCtx.coerce)
		StringFlag(f, &parseCtx.byteOrder, cliflags.ByteOrder, parseCtx.byteOrder)
	}

	for _, cmd := range []*cobra.Command{emitCmd, indexCmd} {
		f := cmd.Flags()
		StringFlag(f, &mappingCtx.mappingPath, cliflags.Mapping, mappingCtx.mappingPath)
	}
	{
		f := emitCmd.Flags()
		StringFlag(f, &mappingCtx.field, cliflags.Field, mappingCtx.field)
	}
	{
		f := indexCmd.Flags()
		BoolFlag(f, &mappingCtx.showTerms, cliflags.ShowTerms, mappingCtx.showTerms)
		BoolFlag(f, &mappingCtx.showMetrics, cliflags.ShowMetrics, mappingCtx.showMetrics)
	}
}
