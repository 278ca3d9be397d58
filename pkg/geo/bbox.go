// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geo

import (
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
)

// BoundingBoxFromGeomT returns the bounding box of t in x/y, or nil if t is
// empty.
func BoundingBoxFromGeomT(t geom.T) *geopb.BoundingBox {
	bbox := geopb.NewBoundingBox()
	_ = ForEachComponent(t, func(g geom.T) error {
		flatCoords := g.FlatCoords()
		stride := g.Stride()
		for i := 0; i+1 < len(flatCoords); i += stride {
			bbox.Update(flatCoords[i], flatCoords[i+1])
		}
		return nil
	})
	if bbox.Empty() {
		return nil
	}
	return bbox
}
