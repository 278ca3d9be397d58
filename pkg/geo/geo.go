// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package geo contains helpers over the go-geom shape model used by the wkt
// field type.
//
// Subpackages are available that operate on these shapes:
//   - geo/wkt parses Well-Known Text into go-geom values.
//   - geo/geoindex turns shapes into indexable fields and stores them in an
//     in-memory inverted index.
package geo

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
)

// ShapeType names the variants of the shape model.
type ShapeType string

// The shape types, named as they appear in error messages.
const (
	ShapeTypePoint              ShapeType = "Point"
	ShapeTypeLineString         ShapeType = "LineString"
	ShapeTypePolygon            ShapeType = "Polygon"
	ShapeTypeMultiPoint         ShapeType = "MultiPoint"
	ShapeTypeMultiLineString    ShapeType = "MultiLineString"
	ShapeTypeMultiPolygon       ShapeType = "MultiPolygon"
	ShapeTypeGeometryCollection ShapeType = "GeometryCollection"
)

// ShapeTypeOf returns the type of the given shape.
func ShapeTypeOf(t geom.T) (ShapeType, error) {
	switch t.(type) {
	case *geom.Point:
		return ShapeTypePoint, nil
	case *geom.LineString:
		return ShapeTypeLineString, nil
	case *geom.Polygon:
		return ShapeTypePolygon, nil
	case *geom.MultiPoint:
		return ShapeTypeMultiPoint, nil
	case *geom.MultiLineString:
		return ShapeTypeMultiLineString, nil
	case *geom.MultiPolygon:
		return ShapeTypeMultiPolygon, nil
	case *geom.GeometryCollection:
		return ShapeTypeGeometryCollection, nil
	default:
		return "", errors.AssertionFailedf("unknown geom type: %T", t)
	}
}

// IsEmpty returns whether the given shape has no coordinates. A geometry
// collection is empty when all of its members are.
func IsEmpty(t geom.T) bool {
	switch t := t.(type) {
	case *geom.GeometryCollection:
		for _, g := range t.Geoms() {
			if !IsEmpty(g) {
				return false
			}
		}
		return true
	case nil:
		return true
	default:
		return len(t.FlatCoords()) == 0
	}
}

// AdjustGeomSRID adjusts the SRID of a given geom.T.
// Ideally SetSRID is an interface of geom.T, but that is not the case.
func AdjustGeomSRID(t geom.T, srid int) {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(srid)
	case *geom.LineString:
		t.SetSRID(srid)
	case *geom.Polygon:
		t.SetSRID(srid)
	case *geom.GeometryCollection:
		t.SetSRID(srid)
	case *geom.MultiPoint:
		t.SetSRID(srid)
	case *geom.MultiLineString:
		t.SetSRID(srid)
	case *geom.MultiPolygon:
		t.SetSRID(srid)
	default:
		panic(errors.AssertionFailedf("unknown geom type: %T", t))
	}
}

// ForEachComponent calls fn for every non-collection shape in t, descending
// into geometry collections in order. Iteration stops at the first error.
func ForEachComponent(t geom.T, fn func(geom.T) error) error {
	if gc, ok := t.(*geom.GeometryCollection); ok {
		for _, g := range gc.Geoms() {
			if err := ForEachComponent(g, fn); err != nil {
				return err
			}
		}
		return nil
	}
	return fn(t)
}
