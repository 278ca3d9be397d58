// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"math"
	"math/bits"

	"github.com/cockroachdb/mapper-wkt/pkg/geo/geopb"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	earthSemiMajorAxis = 6378137.0
	earthSemiMinorAxis = 6356752.314245
	earthEquator       = 2 * math.Pi * earthSemiMajorAxis
	earthPolarDistance = math.Pi * earthSemiMinorAxis
	// earthRadiusMeters is the mean radius used to turn s2 angles into
	// distances.
	earthRadiusMeters = 6371010.0
)

// MaxGeohashLevels is the deepest geohash tree supported.
const MaxGeohashLevels = 12

// MaxQuadTreeLevels is the deepest quadtree supported, the s2 leaf level.
const MaxQuadTreeLevels = 30

// DefaultPrecisionMeters is the precision used when neither tree_levels nor
// precision is configured.
const DefaultPrecisionMeters = 50.0

// MaxTreeLevels returns the deepest tree supported for the tree type.
func MaxTreeLevels(tree TreeType) int {
	if tree == QuadTree {
		return MaxQuadTreeLevels
	}
	return MaxGeohashLevels
}

// DefaultTreeLevels returns the tree depth for DefaultPrecisionMeters.
func DefaultTreeLevels(tree TreeType) int {
	return TreeLevelsForPrecision(tree, DefaultPrecisionMeters)
}

// TreeLevelsForPrecision returns the tree depth whose cells are at most
// meters wide. Zero meters means the deepest tree.
func TreeLevelsForPrecision(tree TreeType, meters float64) int {
	if tree == QuadTree {
		return QuadTreeLevelsForPrecision(meters)
	}
	return GeohashLevelsForPrecision(meters)
}

// GeohashLevelsForPrecision returns the geohash length for the precision.
func GeohashLevelsForPrecision(meters float64) int {
	if meters <= 0 {
		return MaxGeohashLevels
	}
	// Cells are roughly twice as wide as they are high, so size the cell
	// width so that its diagonal is the requested precision.
	ratio := 1 + earthPolarDistance/earthEquator
	width := meters / ratio
	part := uint64(math.Ceil(earthEquator / width))
	lonBits := bits.Len64(part) - 1
	if part > 1<<uint(lonBits) {
		lonBits++
	}
	// A geohash of n characters carries ceil(5n/2) longitude bits.
	levels := (2*lonBits + 4) / 5
	return clampLevel(levels, MaxGeohashLevels)
}

// QuadTreeLevelsForPrecision returns the s2 level whose average cell edge
// is at most meters long.
func QuadTreeLevelsForPrecision(meters float64) int {
	if meters <= 0 {
		return MaxQuadTreeLevels
	}
	return clampLevel(s2.AvgEdgeMetric.MinLevel(meters/earthRadiusMeters), MaxQuadTreeLevels)
}

// geohashCellSize returns the width and height in degrees of a geohash cell
// of the given length.
func geohashCellSize(level int) (width, height float64) {
	lonBits := (5*level + 1) / 2
	latBits := 5 * level / 2
	return 360 / math.Ldexp(1, lonBits), 180 / math.Ldexp(1, latBits)
}

// quadTreeLevelForDistance returns the shallowest s2 level whose average
// cell edge is at most degrees long.
func quadTreeLevelForDistance(degrees float64, maxLevels int) int {
	if degrees <= 0 {
		return maxLevels
	}
	angle := s1.Angle(degrees) * s1.Degree
	return clampLevel(s2.AvgEdgeMetric.MinLevel(angle.Radians()), maxLevels)
}

// geohashLevelForDistance returns the shortest geohash whose cells are at
// most degrees wide and high.
func geohashLevelForDistance(degrees float64, maxLevels int) int {
	if degrees <= 0 {
		return maxLevels
	}
	for level := 1; level < maxLevels; level++ {
		w, h := geohashCellSize(level)
		if w <= degrees && h <= degrees {
			return level
		}
	}
	return maxLevels
}

// distanceForErrPct returns the cell size in degrees allowed for a shape
// with the given bounding box: the distance from its center to a corner,
// scaled by distErrPct.
func distanceForErrPct(bbox *geopb.BoundingBox, distErrPct float64) float64 {
	if distErrPct <= 0 || bbox.IsPoint() {
		return 0
	}
	return math.Hypot((bbox.HiX-bbox.LoX)/2, (bbox.HiY-bbox.LoY)/2) * distErrPct
}

func clampLevel(level, maxLevels int) int {
	if level < 1 {
		return 1
	}
	if level > maxLevels {
		return maxLevels
	}
	return level
}
