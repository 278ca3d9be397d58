// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"math"

	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/cockroachdb/mapper-wkt/pkg/settings"
)

// Option names, in their canonical snake_case form.
const (
	optTree             = "tree"
	optTreeLevels       = "tree_levels"
	optPrecision        = "precision"
	optDistanceErrorPct = "distance_error_pct"
	optOrientation      = "orientation"
	optStrategy         = "strategy"
	optCoerce           = "coerce"
	optPointsOnly       = "points_only"
	optBoost            = "boost"
)

var (
	treeSetting = settings.RegisterStringSetting(
		optTree,
		"prefix tree implementation: geohash or quadtree",
		string(geoindex.GeohashTree),
		"geohash", "quadtree", "legacyquadtree",
	)
	treeLevelsSetting = settings.RegisterIntSetting(
		optTreeLevels,
		"maximum number of layers of the prefix tree",
		0, 1, geoindex.MaxQuadTreeLevels,
	)
	precisionSetting = settings.RegisterStringSetting(
		optPrecision,
		"distance such as 50m or 1km that the deepest tree layer should resolve",
		"50m",
	)
	distanceErrorPctSetting = settings.RegisterFloatSetting(
		optDistanceErrorPct,
		"fraction of a shape's size its indexed cells may overshoot it by",
		geoindex.DefaultDistanceErrorPct, 0, geoindex.MaxDistanceErrorPct,
	)
	orientationSetting = settings.RegisterStringSetting(
		optOrientation,
		"vertex order of polygon exterior rings: right (counterclockwise) or left (clockwise)",
		"right",
		"right", "ccw", "counterclockwise", "left", "cw", "clockwise",
	)
	strategySetting = settings.RegisterStringSetting(
		optStrategy,
		"indexing strategy: recursive, term or bkd",
		string(geoindex.RecursivePrefixTree),
		string(geoindex.RecursivePrefixTree), string(geoindex.Term), string(geoindex.BKD),
	)
	coerceSetting = settings.RegisterBoolSetting(
		optCoerce,
		"close unclosed polygon rings instead of rejecting them",
		false,
	)
	pointsOnlySetting = settings.RegisterBoolSetting(
		optPointsOnly,
		"reject every shape that is not a point",
		false,
	)
	boostSetting = settings.RegisterFloatSetting(
		optBoost,
		"weight attached to every field emitted for the value",
		1.0, 0, math.MaxFloat64,
	)
)
