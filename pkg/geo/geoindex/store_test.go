// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func termField(term string) Field {
	return Field{Name: "location", Kind: FieldKindTerm, Term: term}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	s.Add(ctx, "1", []Field{termField("u3"), termField("u33"), termField("u33")})
	s.Add(ctx, "2", []Field{termField("u3"), termField("u34")})
	s.Add(ctx, "3", []Field{{Name: "other", Kind: FieldKindTerm, Term: "u3"}})

	require.Equal(t, []string{"1", "2"}, s.DocsForTerm("location", "u3"))
	require.Equal(t, []string{"1"}, s.DocsForTerm("location", "u33"))
	require.Equal(t, []string{"3"}, s.DocsForTerm("other", "u3"))
	require.Empty(t, s.DocsForTerm("location", "u"))
	require.Equal(t, []string{"u3", "u33", "u34"}, s.TermsForField("location"))
	require.Equal(t, 4, s.NumTerms())
	require.Equal(t, StoreStats{Docs: 3, Terms: 4, Entries: 5}, s.Stats())

	// Reindexing replaces the document's previous terms.
	s.Add(ctx, "1", []Field{termField("u34")})
	require.Equal(t, []string{"2"}, s.DocsForTerm("location", "u3"))
	require.Empty(t, s.DocsForTerm("location", "u33"))
	require.Equal(t, []string{"1", "2"}, s.DocsForTerm("location", "u34"))

	require.True(t, s.Delete("2"))
	require.False(t, s.Delete("2"))
	require.Empty(t, s.DocsForTerm("location", "u3"))
	require.Equal(t, []string{"1", "3"}, s.DocIDs())
}

func TestStorePointsAndShapes(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	strategy := mustStrategy(t, BKD, Config{})

	points, err := strategy.CreateIndexableFields(ctx, mustParse(t, "MULTIPOINT (1 2, 1 2, 3 4)"))
	require.NoError(t, err)
	s.Add(ctx, "points", points)
	require.Equal(t, []string{"points"}, s.DocsForTerm("location", points[2].IndexTerm()))
	require.Equal(t, 2, s.NumTerms())

	shapes, err := strategy.CreateIndexableFields(ctx, mustParse(t, "POLYGON ((0 0, 1 0, 1 1, 0 0))"))
	require.NoError(t, err)
	s.Add(ctx, "shape", shapes)
	require.Equal(t, [][]byte{shapes[0].Blob}, s.Shapes("shape", "location"))
	require.Nil(t, s.Shapes("points", "location"))
	require.Equal(t, StoreStats{Docs: 2, Terms: 2, Entries: 2, Shapes: 1}, s.Stats())
}

func TestStoreWithPrefixTree(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	strategy := mustStrategy(t, RecursivePrefixTree, Config{TreeLevels: 6})

	for id, str := range map[string]string{
		"berlin":  "POINT (13.400544 52.530286)",
		"potsdam": "POINT (13.0645 52.3906)",
		"nyc":     "POINT (-73.9857 40.7484)",
	} {
		fields, err := strategy.CreateIndexableFields(ctx, mustParse(t, str))
		require.NoError(t, err)
		s.Add(ctx, id, fields)
	}
	// Berlin and Potsdam share a coarse geohash cell.
	require.Equal(t, []string{"berlin", "potsdam"}, s.DocsForTerm("location", "u3"))
	require.Equal(t, []string{"nyc"}, s.DocsForTerm("location", "dr5r"))
}

func TestPointIndexTermOrder(t *testing.T) {
	values := []int32{-1 << 31, -5, -1, 0, 1, 7, 1<<31 - 1}
	var terms []string
	for _, v := range values {
		terms = append(terms, Field{Kind: FieldKindPoint, Point: [2]int32{v, 0}}.IndexTerm())
	}
	require.True(t, sort.StringsAreSorted(terms), "%v", terms)
}
