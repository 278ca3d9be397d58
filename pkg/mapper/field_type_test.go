// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"testing"

	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/stretchr/testify/require"
)

func TestParseFieldType(t *testing.T) {
	testCases := []struct {
		desc     string
		node     map[string]interface{}
		expected func(ft *FieldType)
		residual map[string]interface{}
	}{
		{
			desc:     "defaults",
			node:     map[string]interface{}{},
			expected: func(ft *FieldType) {},
			residual: map[string]interface{}{},
		},
		{
			desc: "quadtree with precision",
			node: map[string]interface{}{"tree": "quadtree", "precision": "1km"},
			expected: func(ft *FieldType) {
				ft.Tree = geoindex.QuadTree
				ft.TreeLevels = geoindex.QuadTreeLevelsForPrecision(1000)
				ft.DistanceErrorPct = geoindex.DefaultDistanceErrorPct
			},
			residual: map[string]interface{}{},
		},
		{
			desc: "finer of tree_levels and precision wins",
			node: map[string]interface{}{"tree_levels": 5, "precision": "50m"},
			expected: func(ft *FieldType) {
				ft.TreeLevels = 9
				ft.DistanceErrorPct = geoindex.DefaultDistanceErrorPct
			},
			residual: map[string]interface{}{},
		},
		{
			desc: "camel case tree levels",
			node: map[string]interface{}{"treeLevels": 11},
			expected: func(ft *FieldType) {
				ft.TreeLevels = 11
				ft.DistanceErrorPct = geoindex.DefaultDistanceErrorPct
			},
			residual: map[string]interface{}{},
		},
		{
			desc: "explicit distance error",
			node: map[string]interface{}{"distance_error_pct": 0.1, "tree_levels": 3},
			expected: func(ft *FieldType) {
				ft.TreeLevels = 3
				ft.DistanceErrorPct = 0.1
			},
			residual: map[string]interface{}{},
		},
		{
			desc: "clockwise orientation",
			node: map[string]interface{}{"orientation": "cw"},
			expected: func(ft *FieldType) {
				ft.Orientation = geoindex.OrientationLeft
			},
			residual: map[string]interface{}{},
		},
		{
			desc: "coerce points only and boost",
			node: map[string]interface{}{"coerce": "true", "pointsOnly": true, "boost": 2.5},
			expected: func(ft *FieldType) {
				ft.Coerce = true
				ft.PointsOnly = true
				ft.Boost = 2.5
			},
			residual: map[string]interface{}{},
		},
		{
			desc: "zero boost",
			node: map[string]interface{}{"boost": 0},
			expected: func(ft *FieldType) {
				ft.Boost = 0
			},
			residual: map[string]interface{}{},
		},
		{
			desc: "term strategy leaves points_only unconsumed",
			node: map[string]interface{}{"strategy": "term", "points_only": false},
			expected: func(ft *FieldType) {
				ft.Strategy = geoindex.Term
				ft.PointsOnly = true
			},
			residual: map[string]interface{}{"points_only": false},
		},
		{
			desc: "bkd strategy",
			node: map[string]interface{}{"strategy": "bkd"},
			expected: func(ft *FieldType) {
				ft.Strategy = geoindex.BKD
			},
			residual: map[string]interface{}{},
		},
		{
			desc:     "unknown options are returned with their original keys",
			node:     map[string]interface{}{"type": "wkt", "ignoreMalformed": true},
			expected: func(ft *FieldType) {},
			residual: map[string]interface{}{"type": "wkt", "ignoreMalformed": true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ft, residual, err := ParseFieldType("location", tc.node)
			require.NoError(t, err)
			expected := DefaultFieldType("location")
			tc.expected(&expected)
			require.Equal(t, expected, ft)
			require.Equal(t, tc.residual, residual)
		})
	}
}

func TestDefaultFieldType(t *testing.T) {
	ft := DefaultFieldType("location")
	require.Equal(t, geoindex.GeohashTree, ft.Tree)
	require.Equal(t, 9, ft.TreeLevels)
	require.Equal(t, 0.5, ft.DistanceErrorPct)
	require.Equal(t, geoindex.OrientationRight, ft.Orientation)
	require.Equal(t, geoindex.RecursivePrefixTree, ft.Strategy)
	require.Equal(t, 1.0, ft.Boost)
	require.False(t, ft.PointsOnly)
	require.False(t, ft.Coerce)
}

func TestParseFieldTypeDoesNotModifyNode(t *testing.T) {
	node := map[string]interface{}{"tree": "quadtree", "foo": "bar"}
	_, _, err := ParseFieldType("location", node)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"tree": "quadtree", "foo": "bar"}, node)
}

func TestParseFieldTypeErrors(t *testing.T) {
	testCases := []struct {
		node     map[string]interface{}
		expected string
	}{
		{
			node:     map[string]interface{}{"tree": "rtree"},
			expected: "[tree] must be one of",
		},
		{
			node:     map[string]interface{}{"tree_levels": 13},
			expected: "[tree_levels] must be at most 12 for tree [geohash], got 13",
		},
		{
			node:     map[string]interface{}{"tree": "quadtree", "tree_levels": 31},
			expected: "[tree_levels] must be between 1 and 30, got 31",
		},
		{
			node:     map[string]interface{}{"tree_levels": 3, "treeLevels": 4},
			expected: "option [tree_levels] is set twice, as [treeLevels] and [tree_levels]",
		},
		{
			node:     map[string]interface{}{"distance_error_pct": 0.9},
			expected: "[distance_error_pct] must be between",
		},
		{
			node:     map[string]interface{}{"precision": "far"},
			expected: `failed to parse distance "far"`,
		},
		{
			node:     map[string]interface{}{"points_only": "maybe"},
			expected: "[points_only] expected",
		},
		{
			node:     map[string]interface{}{"strategy": "vector"},
			expected: "[strategy] must be one of",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			_, _, err := ParseFieldType("location", tc.node)
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid mapping for field [location]")
			require.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestToUnderscoreCase(t *testing.T) {
	for in, expected := range map[string]string{
		"tree":             "tree",
		"treeLevels":       "tree_levels",
		"tree_levels":      "tree_levels",
		"distanceErrorPct": "distance_error_pct",
		"pointsOnly":       "points_only",
	} {
		require.Equal(t, expected, toUnderscoreCase(in))
	}
}
