// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func mustParse(t *testing.T, str string) geom.T {
	g, err := geo.ParseWKT(str, 0)
	require.NoError(t, err)
	return g
}

func mustBackend(t *testing.T, ft FieldType) geoindex.Strategy {
	s, err := geoindex.NewStrategy(ft.Strategy, ft.StrategyConfig())
	require.NoError(t, err)
	return s
}

// fakeBackend returns canned fields or an error.
type fakeBackend struct {
	name   geoindex.StrategyName
	fields []geoindex.Field
	err    error
}

func (f *fakeBackend) Name() geoindex.StrategyName { return f.name }

func (f *fakeBackend) CreateIndexableFields(context.Context, geom.T) ([]geoindex.Field, error) {
	return f.fields, f.err
}

func TestEmitPoint(t *testing.T) {
	ctx := context.Background()
	ft := DefaultFieldType("location")
	fields, err := Emit(ctx, mustParse(t, "POINT (13.400544 52.530286)"), ft.EmitConfig(), mustBackend(t, ft))
	require.NoError(t, err)
	require.Len(t, fields, ft.TreeLevels)
	for _, f := range fields {
		require.Equal(t, "location", f.Name)
		require.Equal(t, geoindex.FieldKindTerm, f.Kind)
		require.Equal(t, 1.0, f.Boost)
	}
	require.Equal(t, "u", fields[0].Term)
	require.Equal(t, "u33dbf", fields[5].Term)
}

func TestEmitBoost(t *testing.T) {
	ctx := context.Background()
	ft := DefaultFieldType("location")
	ft.Boost = 2.5
	fields, err := Emit(ctx, mustParse(t, "LINESTRING (13 52, 13.5 52.5)"), ft.EmitConfig(), mustBackend(t, ft))
	require.NoError(t, err)
	require.NotEmpty(t, fields)
	for _, f := range fields {
		require.Equal(t, 2.5, f.Boost)
	}

	// The configured boost replaces whatever the backend set.
	backend := &fakeBackend{
		name: geoindex.RecursivePrefixTree,
		fields: []geoindex.Field{
			{Name: "location", Kind: geoindex.FieldKindTerm, Term: "u", Boost: 4},
			{Name: "location", Kind: geoindex.FieldKindTerm, Term: "u3"},
		},
	}
	fields, err = Emit(ctx, mustParse(t, "POINT (1 2)"), ft.EmitConfig(), backend)
	require.NoError(t, err)
	require.Equal(t, 2.5, fields[0].Boost)
	require.Equal(t, 2.5, fields[1].Boost)

	// An explicit zero boost is kept as zero.
	ft.Boost = 0
	fields, err = Emit(ctx, mustParse(t, "POINT (1 2)"), ft.EmitConfig(), mustBackend(t, ft))
	require.NoError(t, err)
	require.NotEmpty(t, fields)
	for _, f := range fields {
		require.Equal(t, 0.0, f.Boost)
	}
}

func TestEmitPointsOnly(t *testing.T) {
	ctx := context.Background()
	ft := DefaultFieldType("location")
	ft.PointsOnly = true
	backend := mustBackend(t, ft)

	fields, err := Emit(ctx, mustParse(t, "POINT (1 2)"), ft.EmitConfig(), backend)
	require.NoError(t, err)
	require.NotEmpty(t, fields)

	for str, shapeType := range map[string]geo.ShapeType{
		"POLYGON ((0 0, 1 0, 1 1, 0 0))":   geo.ShapeTypePolygon,
		"MULTIPOINT (1 2, 3 4)":            geo.ShapeTypeMultiPoint,
		"GEOMETRYCOLLECTION (POINT (1 2))": geo.ShapeTypeGeometryCollection,
		"LINESTRING (0 0, 1 1)":            geo.ShapeTypeLineString,
	} {
		t.Run(str, func(t *testing.T) {
			_, err := Emit(ctx, mustParse(t, str), ft.EmitConfig(), backend)
			var violation *PointsOnlyViolationError
			require.True(t, errors.As(err, &violation), "%v", err)
			require.Equal(t, "location", violation.Field)
			require.Equal(t, shapeType, violation.ActualType)
		})
	}

	_, err = Emit(ctx, mustParse(t, "POLYGON ((0 0, 1 0, 1 1, 0 0))"), ft.EmitConfig(), backend)
	require.EqualError(t, err, "[location] is configured for points only but a Polygon was found")
}

func TestEmitNothingToIndex(t *testing.T) {
	ctx := context.Background()
	ft := DefaultFieldType("location")
	for _, str := range []string{"POINT EMPTY", "LINESTRING EMPTY", "GEOMETRYCOLLECTION EMPTY"} {
		fields, err := Emit(ctx, mustParse(t, str), ft.EmitConfig(), mustBackend(t, ft))
		require.NoError(t, err)
		require.Nil(t, fields)
	}
}

func TestEmitBackendErrors(t *testing.T) {
	ctx := context.Background()
	ft := DefaultFieldType("location")

	// Backend errors pass through unchanged.
	cause := errors.New("backend unavailable")
	backend := &fakeBackend{name: geoindex.RecursivePrefixTree, err: cause}
	_, err := Emit(ctx, mustParse(t, "POINT (1 2)"), ft.EmitConfig(), backend)
	require.Equal(t, cause, err)

	_, err = Emit(ctx, mustParse(t, "POINT (200 2)"), ft.EmitConfig(), mustBackend(t, ft))
	require.True(t, errors.Is(err, geoindex.ErrOutOfBounds), "%v", err)

	// A backend built for another strategy is a programming error.
	backend = &fakeBackend{name: geoindex.BKD}
	_, err = Emit(ctx, mustParse(t, "POINT (1 2)"), ft.EmitConfig(), backend)
	require.True(t, errors.IsAssertionFailure(err), "%v", err)
}

func TestEmitStrategies(t *testing.T) {
	ctx := context.Background()
	polygon := mustParse(t, "POLYGON ((13 52, 14 52, 14 53, 13 53, 13 52))")

	t.Run("quadtree", func(t *testing.T) {
		ft := DefaultFieldType("location")
		ft.Tree = geoindex.QuadTree
		ft.TreeLevels = geoindex.DefaultTreeLevels(geoindex.QuadTree)
		fields, err := Emit(ctx, polygon, ft.EmitConfig(), mustBackend(t, ft))
		require.NoError(t, err)
		require.NotEmpty(t, fields)
	})

	t.Run("term", func(t *testing.T) {
		ft := DefaultFieldType("location")
		ft.Strategy = geoindex.Term
		ft.PointsOnly = true
		backend := mustBackend(t, ft)
		fields, err := Emit(ctx, mustParse(t, "POINT (13 52)"), ft.EmitConfig(), backend)
		require.NoError(t, err)
		require.Len(t, fields, ft.TreeLevels)
		_, err = Emit(ctx, polygon, ft.EmitConfig(), backend)
		var violation *PointsOnlyViolationError
		require.True(t, errors.As(err, &violation))
	})

	t.Run("bkd", func(t *testing.T) {
		ft := DefaultFieldType("location")
		ft.Strategy = geoindex.BKD
		fields, err := Emit(ctx, polygon, ft.EmitConfig(), mustBackend(t, ft))
		require.NoError(t, err)
		require.Len(t, fields, 1)
		require.Equal(t, geoindex.FieldKindShape, fields[0].Kind)
		require.Equal(t, 1.0, fields[0].Boost)
	})
}
