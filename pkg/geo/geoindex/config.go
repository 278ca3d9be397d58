// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// StrategyName names an indexing strategy.
type StrategyName string

const (
	// RecursivePrefixTree indexes shapes as prefix tree cells.
	RecursivePrefixTree StrategyName = "recursive"
	// Term indexes points as the full chain of their prefix tree cells.
	Term StrategyName = "term"
	// BKD indexes points as quantized coordinates and other shapes as WKB.
	BKD StrategyName = "bkd"
)

// ParseStrategyName parses a strategy name case-insensitively.
func ParseStrategyName(s string) (StrategyName, error) {
	switch name := StrategyName(strings.ToLower(s)); name {
	case RecursivePrefixTree, Term, BKD:
		return name, nil
	default:
		return "", errors.Newf("unknown strategy [%s]", s)
	}
}

// TreeType names a prefix tree implementation.
type TreeType string

const (
	// GeohashTree divides the world into geohash cells, 32 children each.
	GeohashTree TreeType = "geohash"
	// QuadTree divides the world into s2 cells, 4 children each.
	QuadTree TreeType = "quadtree"
)

// ParseTreeType parses a tree name. "legacyquadtree" is accepted as an alias
// of quadtree.
func ParseTreeType(s string) (TreeType, error) {
	switch strings.ToLower(s) {
	case "geohash":
		return GeohashTree, nil
	case "quadtree", "legacyquadtree":
		return QuadTree, nil
	default:
		return "", errors.Newf("unknown tree type [%s]", s)
	}
}

// Orientation is the vertex order of polygon exterior rings. Holes use the
// opposite order.
type Orientation int

const (
	// OrientationRight is the right-hand rule: exterior rings are
	// counterclockwise.
	OrientationRight Orientation = iota
	// OrientationLeft is the left-hand rule: exterior rings are clockwise.
	OrientationLeft
)

func (o Orientation) String() string {
	if o == OrientationLeft {
		return "left"
	}
	return "right"
}

// ParseOrientation parses an orientation name or one of its aliases.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "right", "ccw", "counterclockwise":
		return OrientationRight, nil
	case "left", "cw", "clockwise":
		return OrientationLeft, nil
	default:
		return 0, errors.Newf("unknown orientation [%s]", s)
	}
}

// DefaultDistanceErrorPct is the default fraction of a shape's size that
// its indexed cells may overshoot it by.
const DefaultDistanceErrorPct = 0.025

// MaxDistanceErrorPct is the largest accepted distance error fraction.
const MaxDistanceErrorPct = 0.5

// Config configures a Strategy. The configuration of an index cannot be
// changed without rewriting it, since deletes could miss some terms.
type Config struct {
	// FieldName is written into every emitted Field.
	FieldName string
	// Tree selects the prefix tree of the recursive and term strategies.
	Tree TreeType
	// TreeLevels is the maximum depth of the prefix tree. Zero means the
	// default for the tree type.
	TreeLevels int
	// DistanceErrorPct bounds how coarse the cells covering a shape may be,
	// as a fraction of the shape's size.
	DistanceErrorPct float64
	// Orientation is applied to polygon rings by the BKD strategy.
	Orientation Orientation
}

// MaxLevels returns the effective maximum tree depth of the config.
func (cfg Config) MaxLevels() int {
	if cfg.TreeLevels > 0 {
		return cfg.TreeLevels
	}
	return DefaultTreeLevels(cfg.Tree)
}

// Validate checks the config against the limits of its tree type.
func (cfg Config) Validate() error {
	if _, err := ParseTreeType(string(cfg.Tree)); err != nil {
		return err
	}
	if max := MaxTreeLevels(cfg.Tree); cfg.TreeLevels < 0 || cfg.TreeLevels > max {
		return errors.Newf("tree_levels must be between 1 and %d for tree [%s], got %d",
			max, cfg.Tree, cfg.TreeLevels)
	}
	if cfg.DistanceErrorPct < 0 || cfg.DistanceErrorPct > MaxDistanceErrorPct {
		return errors.Newf("distance_error_pct must be between 0 and %g, got %g",
			MaxDistanceErrorPct, cfg.DistanceErrorPct)
	}
	return nil
}
