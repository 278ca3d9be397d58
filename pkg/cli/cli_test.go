// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/clierror"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/stretchr/testify/require"
)

// runWithCapture runs the command line with stdin as standard input and
// returns what the command wrote to its standard output and error.
func runWithCapture(stdin string, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	wktMapperCmd.SetOut(&out)
	wktMapperCmd.SetErr(&errOut)
	wktMapperCmd.SetIn(strings.NewReader(stdin))
	defer func() {
		wktMapperCmd.SetOut(nil)
		wktMapperCmd.SetErr(nil)
		wktMapperCmd.SetIn(nil)
	}()
	err = Run(args)
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// TestCLI runs the command lines of testdata/cli. The first line of the
// input is the command line; the remaining lines are standard input.
func TestCLI(t *testing.T) {
	datadriven.RunTest(t, "testdata/cli", func(t *testing.T, d *datadriven.TestData) string {
		if d.Cmd != "run" {
			return fmt.Sprintf("unknown command: %s", d.Cmd)
		}
		cmdLine, stdin, _ := strings.Cut(d.Input, "\n")
		stdout, stderr, err := runWithCapture(stdin, strings.Fields(cmdLine)...)
		var b strings.Builder
		b.WriteString(stdout)
		if stderr != "" {
			fmt.Fprintf(&b, "stderr:\n%s", stderr)
		}
		if err != nil {
			fmt.Fprintf(&b, "exit %s: %v\n", clierror.ExitCode(err), err)
		}
		return b.String()
	})
}

func TestParseGeoJSON(t *testing.T) {
	stdout, _, err := runWithCapture("SRID=4326;POINT (1 2)", "parse", "--format", "geojson")
	require.NoError(t, err)
	require.JSONEq(t,
		`{"type":"Point","coordinates":[1,2],"crs":{"type":"name","properties":{"name":"EPSG:4326"}}}`,
		stdout)

	stdout, _, err = runWithCapture("POINT (1 2)", "parse", "-f", "kml")
	require.NoError(t, err)
	require.Contains(t, stdout, "<Point>")
}

func TestEmit(t *testing.T) {
	mapping := writeFile(t, "mapping.yaml", `
properties:
  location:
    type: wkt
    tree_levels: 3
  area:
    type: wkt
    strategy: bkd
`)
	stdout, stderr, err := runWithCapture("POINT (13.400544 52.530286)\n\nPOINT EMPTY\n",
		"emit", "--mapping", mapping, "--field", "location")
	require.NoError(t, err)
	require.Empty(t, stderr)
	require.Equal(t, `location term u boost=1
location term u3 boost=1
location term u33 boost=1
(no fields)
`, stdout)

	_, stderr, err = runWithCapture("POINT (1 95)", "emit", "-m", mapping, "--field", "area")
	require.Error(t, err)
	require.Equal(t, exit.InvalidShape(), clierror.ExitCode(err))
	require.Contains(t, stderr, "failed to parse [area]")

	_, _, err = runWithCapture("POINT (1 2)", "emit", "--mapping", mapping)
	require.EqualError(t, err, "the mapping declares 2 fields, select one with --field")
	require.Equal(t, exit.CommandLineFlagError(), clierror.ExitCode(err))

	_, _, err = runWithCapture("POINT (1 2)", "emit", "--mapping", mapping, "--field", "missing")
	require.EqualError(t, err, "field [missing] is not declared in the mapping")

	_, _, err = runWithCapture("POINT (1 2)", "emit")
	require.EqualError(t, err, "emit requires --mapping")
}

func TestEmitMappingFromEnv(t *testing.T) {
	mapping := writeFile(t, "mapping.json", `{"properties": {"location": {"type": "wkt", "treeLevels": 1}}}`)
	t.Setenv(envVars["mapping"], mapping)
	stdout, _, err := runWithCapture("POINT (13.400544 52.530286)", "emit")
	require.NoError(t, err)
	require.Equal(t, "location term u boost=1\n", stdout)
}

func TestIndex(t *testing.T) {
	mapping := writeFile(t, "mapping.yaml", `
properties:
  location:
    type: wkt
    tree_levels: 3
`)
	docs := writeFile(t, "docs.ndjson", `{"_id": "berlin", "location": "POINT (13.400544 52.530286)"}
{"_id": "potsdam", "location": "POINT (13.0645 52.3906)"}

{"location": "POINT (1 2"}
{"_id": "nyc", "location": null}
not json
`)
	stdout, stderr, err := runWithCapture("", "index", "--mapping", mapping, "--terms", "--metrics", docs)
	require.Error(t, err)
	require.Equal(t, exit.DocumentsRejected(), clierror.ExitCode(err))
	require.EqualError(t, err, "2 documents failed")
	require.Contains(t, stderr, "document [3] rejected: failed to parse [location]")
	require.Contains(t, stderr, "line 5 is not a JSON object")

	stats := make(map[string]string)
	lines := strings.Split(stdout, "\n")
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) == 2 && strings.HasSuffix(fields[0], ":") {
			stats[strings.TrimSuffix(fields[0], ":")] = fields[1]
		}
	}
	require.Equal(t, "3", stats["documents"])
	require.Equal(t, "2", stats["rejected"])
	require.Equal(t, "3", stats["terms"])
	require.Equal(t, "6", stats["entries"])
	require.Equal(t, "0", stats["shapes"])
	require.Contains(t, stdout, "location: u u3 u33\n")
	require.Contains(t, stdout, `wkt_mapper_values_rejected_total{reason="MismatchedParens"} 1`)
	require.Contains(t, stdout, "wkt_mapper_values_absent_total 1")
	require.Contains(t, stdout, "wkt_mapper_values_parsed_total 2")

	stdout, _, err = runWithCapture(`{"location": "POINT (1 2)"}`, "index", "-m", mapping)
	require.NoError(t, err)
	require.Contains(t, stdout, "documents:")
}

func TestOptions(t *testing.T) {
	stdout, _, err := runWithCapture("", "options")
	require.NoError(t, err)
	for _, opt := range []string{"tree", "tree_levels", "precision", "distance_error_pct",
		"orientation", "strategy", "coerce", "points_only", "boost"} {
		require.Contains(t, stdout, "\n"+opt+" ")
	}
	require.Contains(t, stdout, "[geohash, quadtree, legacyquadtree]")
}

func TestReportPanic(t *testing.T) {
	var buf bytes.Buffer
	restore, err := log.ApplyConfig(log.Config{Output: &buf, Format: log.FormatJSON})
	require.NoError(t, err)
	defer restore()

	code := reportPanic(context.Background(), "boom")
	require.Equal(t, exit.UnspecifiedGoPanic(), code)
	require.Contains(t, buf.String(), `"level":"error"`)
	require.Contains(t, buf.String(), "a panic has occurred: boom")
}

func TestLoggingFlags(t *testing.T) {
	_, _, err := runWithCapture("", "options", "--log-format", "xml")
	require.EqualError(t, err, `unknown log format "xml"`)
	require.Equal(t, exit.CommandLineFlagError(), clierror.ExitCode(err))

	_, _, err = runWithCapture("", "version", "--log-format", "json", "-v", "2")
	require.NoError(t, err)
}
