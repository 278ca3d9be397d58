// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/cli/exit"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/cockroachdb/mapper-wkt/pkg/mapper"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// idKey is the document property holding the document id. Documents
// without one are numbered by line.
const idKey = "_id"

var indexCmd = &cobra.Command{
	Use:   "index --mapping <file> [docs.ndjson]",
	Short: "index newline delimited JSON documents into an in-memory term store",
	Long: `
Read one JSON document per line from the given file, or from standard
input, map the wkt fields declared in the mapping and write the produced
terms to an in-memory store. A document that fails to map is rejected as a
whole and reported on standard error; the other documents are still
indexed. Store statistics are printed at the end.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := mapper.NewMetrics(reg)
	dm, err := loadDocumentMapper(ctx, cmd, metrics)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening documents")
		}
		defer f.Close()
		in = f
	}

	store := geoindex.NewStore()
	ix := mapper.NewIndexer(dm, store)
	errOut := cmd.ErrOrStderr()
	var lineNo, rejected int
	// Blank lines are skipped by forEachInput, so line numbers count
	// documents.
	if err := forEachInput(in, nil, func(line string) {
		lineNo++
		id, doc, err := decodeDocument(line, lineNo)
		if err == nil {
			_, err = ix.Index(ctx, id, doc)
		}
		if err != nil {
			rejected++
			log.VEventf(ctx, 1, "%v", err)
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}); err != nil {
		return err
	}

	if log.V(1) {
		log.Infof(ctx, "indexed %d documents, rejected %d", lineNo-rejected, rejected)
	}
	out := cmd.OutOrStdout()
	printStats(out, store.Stats(), rejected)
	if mappingCtx.showTerms {
		for _, fm := range dm.FieldMappers() {
			fmt.Fprintf(out, "%s: %s\n", fm.Name(), strings.Join(store.TermsForField(fm.Name()), " "))
		}
	}
	if mappingCtx.showMetrics {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}
	return failedInputs(exit.DocumentsRejected(), rejected, "documents")
}

func decodeDocument(line string, lineNo int) (string, map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		return "", nil, errors.Wrapf(err, "line %d is not a JSON object", lineNo)
	}
	switch id := doc[idKey].(type) {
	case string:
		return id, doc, nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), doc, nil
	default:
		return strconv.Itoa(lineNo), doc, nil
	}
}

func printStats(w io.Writer, stats geoindex.StoreStats, rejected int) {
	tw := tabwriter.NewWriter(w, 2, 1, 2, ' ', 0)
	fmt.Fprintf(tw, "documents:\t%d\n", stats.Docs)
	fmt.Fprintf(tw, "rejected:\t%d\n", rejected)
	fmt.Fprintf(tw, "terms:\t%d\n", stats.Terms)
	fmt.Fprintf(tw, "entries:\t%d\n", stats.Entries)
	fmt.Fprintf(tw, "shapes:\t%d\n", stats.Shapes)
	_ = tw.Flush()
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
