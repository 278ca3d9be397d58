// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/mapper-wkt/pkg/settings"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "list the options of a wkt field mapping",
	Long: `
List every option a wkt field accepts in a mapping, with its type and
default. Options may also be written in camelCase.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 1, 2, ' ', 0)
		fmt.Fprintln(tw, "Option\tType\tDefault\tDescription")
		for _, key := range settings.Keys() {
			s, desc, _ := settings.Lookup(key)
			if enum, ok := s.(*settings.StringSetting); ok && len(enum.Values()) > 0 {
				desc = fmt.Sprintf("%s [%s]", desc, strings.Join(enum.Values(), ", "))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", key, s.Typ(), s.DefaultString(), desc)
		}
		_ = tw.Flush()
	},
}
