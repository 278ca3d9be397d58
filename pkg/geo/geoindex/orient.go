// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import "github.com/twpayne/go-geom"

// Orient returns g with every polygon's exterior ring in the vertex order of
// o and its holes in the opposite order. g is not modified; shapes without
// polygons are returned as is.
func Orient(g geom.T, o Orientation) geom.T {
	switch g := g.(type) {
	case *geom.Polygon:
		p := g.Clone()
		orientRings(p.FlatCoords(), p.Ends(), p.Stride(), o)
		return p
	case *geom.MultiPolygon:
		mp := g.Clone()
		start := 0
		for _, ends := range mp.Endss() {
			orientRings(mp.FlatCoords()[start:], shiftEnds(ends, start), mp.Stride(), o)
			if len(ends) > 0 {
				start = ends[len(ends)-1]
			}
		}
		return mp
	case *geom.GeometryCollection:
		gc := geom.NewGeometryCollection()
		for _, member := range g.Geoms() {
			// Push only fails on mismatched layouts, which the members of g
			// already share.
			_ = gc.Push(Orient(member, o))
		}
		gc.SetSRID(g.SRID())
		return gc
	default:
		return g
	}
}

func shiftEnds(ends []int, by int) []int {
	shifted := make([]int, len(ends))
	for i, end := range ends {
		shifted[i] = end - by
	}
	return shifted
}

// orientRings reverses, in place, the rings of one polygon whose vertex
// order disagrees with o. flatCoords starts at the polygon's first ring.
func orientRings(flatCoords []float64, ends []int, stride int, o Orientation) {
	start := 0
	for i, end := range ends {
		ring := flatCoords[start:end]
		ccw := signedArea(ring, stride) > 0
		wantCCW := (o == OrientationRight) == (i == 0)
		if ccw != wantCCW {
			reverseRing(ring, stride)
		}
		start = end
	}
}

// signedArea returns twice the signed area of a ring using the shoelace
// formula. It is positive for counterclockwise rings.
func signedArea(ring []float64, stride int) float64 {
	var area float64
	for i := 0; i+stride < len(ring); i += stride {
		area += ring[i]*ring[i+stride+1] - ring[i+stride]*ring[i+1]
	}
	return area
}

func reverseRing(ring []float64, stride int) {
	n := len(ring) / stride
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		for k := 0; k < stride; k++ {
			ring[i*stride+k], ring[j*stride+k] = ring[j*stride+k], ring[i*stride+k]
		}
	}
}
