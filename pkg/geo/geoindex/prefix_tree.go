// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"math"

	"github.com/cockroachdb/mapper-wkt/pkg/geo/geopb"
	"github.com/golang/geo/s2"
	"github.com/pierrre/geohash"
)

// leafMarker is appended to the token of a covering cell that is not at the
// maximum level, so that it can be told apart from the same cell indexed as
// a prefix of a deeper one.
const leafMarker = "+"

// maxCoveringCells bounds the number of cells used to cover one shape.
const maxCoveringCells = 64

// maxGeohashCoveringCells bounds the number of geohash cells enumerated for
// one shape. The level is lowered until the bound holds.
const maxGeohashCoveringCells = 256

// PrefixTree is a hierarchical grid over the world. Cell tokens are strings
// and a cell's token determines the tokens of all its ancestors.
type PrefixTree interface {
	// Type returns the tree type.
	Type() TreeType
	// MaxLevels returns the depth of the tree.
	MaxLevels() int
	// PointTerms returns the tokens of every cell containing the point, from
	// the coarsest level down to MaxLevels.
	PointTerms(lat, lng float64) []string
	// CoverTerms returns the tokens of the cells covering bbox at no more
	// than the given level, with the tokens of all their ancestors. Covering
	// cells shallower than MaxLevels carry the leaf marker.
	CoverTerms(bbox *geopb.BoundingBox, level int) []string
	// LevelForDistance returns the shallowest level whose cells are at most
	// the given number of degrees across.
	LevelForDistance(degrees float64) int
}

// NewPrefixTree returns the prefix tree of the given type and depth.
func NewPrefixTree(tree TreeType, maxLevels int) PrefixTree {
	if tree == QuadTree {
		return &s2QuadTree{maxLevels: maxLevels}
	}
	return &geohashTree{maxLevels: maxLevels}
}

// termSet accumulates tokens, dropping duplicates and keeping insertion
// order.
type termSet struct {
	seen  map[string]struct{}
	terms []string
}

func (s *termSet) add(term string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[term]; ok {
		return
	}
	s.seen[term] = struct{}{}
	s.terms = append(s.terms, term)
}

// s2QuadTree is a PrefixTree over s2 cells. Level 0 holds the six cube
// faces.
type s2QuadTree struct {
	maxLevels int
}

var _ PrefixTree = (*s2QuadTree)(nil)

func (t *s2QuadTree) Type() TreeType { return QuadTree }

func (t *s2QuadTree) MaxLevels() int { return t.maxLevels }

func (t *s2QuadTree) PointTerms(lat, lng float64) []string {
	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng)).Parent(t.maxLevels)
	terms := make([]string, 0, t.maxLevels+1)
	for level := 0; level <= t.maxLevels; level++ {
		terms = append(terms, leaf.Parent(level).ToToken())
	}
	return terms
}

func (t *s2QuadTree) CoverTerms(bbox *geopb.BoundingBox, level int) []string {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(bbox.LoY, bbox.LoX))
	rect = rect.AddPoint(s2.LatLngFromDegrees(bbox.HiY, bbox.HiX))
	rc := &s2.RegionCoverer{
		MinLevel: 0,
		MaxLevel: clampLevel(level, t.maxLevels),
		LevelMod: 1,
		MaxCells: maxCoveringCells,
	}
	var set termSet
	for _, c := range rc.Covering(rect) {
		for l := 0; l < c.Level(); l++ {
			set.add(c.Parent(l).ToToken())
		}
		set.add(c.ToToken())
		if c.Level() < t.maxLevels {
			set.add(c.ToToken() + leafMarker)
		}
	}
	return set.terms
}

func (t *s2QuadTree) LevelForDistance(degrees float64) int {
	return quadTreeLevelForDistance(degrees, t.maxLevels)
}

// geohashTree is a PrefixTree over geohash cells. A cell's token is its
// geohash, so level n cells have n character tokens.
type geohashTree struct {
	maxLevels int
}

var _ PrefixTree = (*geohashTree)(nil)

func (t *geohashTree) Type() TreeType { return GeohashTree }

func (t *geohashTree) MaxLevels() int { return t.maxLevels }

func (t *geohashTree) PointTerms(lat, lng float64) []string {
	hash := geohash.Encode(lat, lng, t.maxLevels)
	terms := make([]string, 0, len(hash))
	for i := 1; i <= len(hash); i++ {
		terms = append(terms, hash[:i])
	}
	return terms
}

func (t *geohashTree) CoverTerms(bbox *geopb.BoundingBox, level int) []string {
	level = clampLevel(level, t.maxLevels)
	var c0, c1, r0, r1 int
	var w, h float64
	for {
		w, h = geohashCellSize(level)
		c0, c1 = gridRange(bbox.LoX+180, bbox.HiX+180, w, 360)
		r0, r1 = gridRange(bbox.LoY+90, bbox.HiY+90, h, 180)
		if level == 1 || (c1-c0+1)*(r1-r0+1) <= maxGeohashCoveringCells {
			break
		}
		level--
	}

	var set termSet
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			lat := -90 + (float64(r)+0.5)*h
			lng := -180 + (float64(c)+0.5)*w
			cell := geohash.Encode(lat, lng, level)
			for i := 1; i < len(cell); i++ {
				set.add(cell[:i])
			}
			set.add(cell)
			if level < t.maxLevels {
				set.add(cell + leafMarker)
			}
		}
	}
	return set.terms
}

func (t *geohashTree) LevelForDistance(degrees float64) int {
	return geohashLevelForDistance(degrees, t.maxLevels)
}

// gridRange returns the first and last index of the size wide cells of a
// grid spanning extent that overlap [lo, hi], where lo and hi are offsets
// from the grid origin.
func gridRange(lo, hi, size, extent float64) (int, int) {
	last := int(math.Round(extent/size)) - 1
	first := int(math.Floor(lo / size))
	end := int(math.Floor(hi / size))
	if first < 0 {
		first = 0
	}
	if end > last {
		end = last
	}
	if end < first {
		end = first
	}
	return first, end
}
