// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/clierror"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/wkt"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
)

// Output formats of the parse command.
const (
	formatWKT     = "wkt"
	formatEWKT    = "ewkt"
	formatGeoJSON = "geojson"
	formatWKB     = "wkb"
	formatKML     = "kml"
	formatGeoHash = "geohash"
)

var parseCmd = &cobra.Command{
	Use:   "parse [wkt...]",
	Short: "parse WKT shapes and print them in another format",
	Long: `
Parse each argument, or each line of standard input when no argument is
given, and print the shape in the format selected with --format. Parse
errors are printed to standard error and the remaining inputs are still
processed.
`,
	RunE: runParse,
}

type encoder func(geom.T) (string, error)

func encoderFor(format string) (encoder, error) {
	digits := parseCtx.digits
	switch strings.ToLower(format) {
	case formatWKT:
		return func(g geom.T) (string, error) { return geo.ToWKT(g, digits) }, nil
	case formatEWKT:
		return func(g geom.T) (string, error) { return geo.ToEWKT(g, digits) }, nil
	case formatGeoJSON:
		if digits < 0 {
			digits = geo.DefaultGeoJSONDecimalDigits
		}
		return func(g geom.T) (string, error) {
			b, err := geo.ToGeoJSON(g, digits, geo.GeoJSONFlagShortCRS)
			return string(b), err
		}, nil
	case formatWKB:
		byteOrder := geo.StringToByteOrder(parseCtx.byteOrder)
		return func(g geom.T) (string, error) {
			b, err := geo.ToWKB(g, byteOrder)
			return strings.ToUpper(hex.EncodeToString(b)), err
		}, nil
	case formatKML:
		return geo.ToKML, nil
	case formatGeoHash:
		precision := geo.GeoHashAutoPrecision
		if digits > 0 {
			precision = digits
		}
		return func(g geom.T) (string, error) { return geo.GeoHash(g, precision) }, nil
	default:
		return nil, errors.Newf("unknown format %q, expected one of %s",
			format, strings.Join([]string{formatWKT, formatEWKT, formatGeoJSON, formatWKB, formatKML, formatGeoHash}, ", "))
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	encode, err := encoderFor(parseCtx.format)
	if err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed int
	if err := forEachInput(cmd.InOrStdin(), args, func(input string) {
		g, err := geo.ParseWKT(input, parseCtx.srid, wkt.WithCoerce(parseCtx.coerce))
		if err == nil {
			var res string
			if res, err = encode(g); err == nil {
				fmt.Fprintln(out, res)
				return
			}
		}
		failed++
		fmt.Fprintf(errOut, "error: %v\n", err)
	}); err != nil {
		return err
	}
	return failedInputs(exit.InvalidShape(), failed, "shapes")
}
