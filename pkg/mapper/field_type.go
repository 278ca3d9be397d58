// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
)

// LegacyDistanceErrorPct is the default distance error fraction of a field
// that configures neither tree_levels nor precision.
const LegacyDistanceErrorPct = 0.5

// FieldType is the resolved configuration of a wkt field. It is a value;
// mappers hold their own copy.
type FieldType struct {
	Name             string
	Tree             geoindex.TreeType
	TreeLevels       int
	DistanceErrorPct float64
	Orientation      geoindex.Orientation
	Strategy         geoindex.StrategyName
	Coerce           bool
	PointsOnly       bool
	Boost            float64
}

// DefaultFieldType returns the configuration of a field with no options.
func DefaultFieldType(name string) FieldType {
	return FieldType{
		Name:             name,
		Tree:             geoindex.GeohashTree,
		TreeLevels:       geoindex.DefaultTreeLevels(geoindex.GeohashTree),
		DistanceErrorPct: LegacyDistanceErrorPct,
		Orientation:      geoindex.OrientationRight,
		Strategy:         geoindex.RecursivePrefixTree,
		Boost:            boostSetting.Default(),
	}
}

// StrategyConfig returns the backend configuration of the field.
func (ft FieldType) StrategyConfig() geoindex.Config {
	return geoindex.Config{
		FieldName:        ft.Name,
		Tree:             ft.Tree,
		TreeLevels:       ft.TreeLevels,
		DistanceErrorPct: ft.DistanceErrorPct,
		Orientation:      ft.Orientation,
	}
}

// EmitConfig returns the emit configuration of the field.
func (ft FieldType) EmitConfig() EmitConfig {
	return EmitConfig{
		Field:      ft.Name,
		PointsOnly: ft.PointsOnly,
		Strategy:   ft.Strategy,
		Boost:      ft.Boost,
	}
}

// toUnderscoreCase converts a camelCase option name to snake_case. Names
// already in snake_case are returned unchanged.
func toUnderscoreCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && s[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseFieldType folds the options of a wkt field definition into a
// FieldType. The options it does not consume are returned in a new residual
// map; node is not modified.
//
// With the term strategy points_only is not consumed, and the field is
// points only regardless, since the term strategy cannot index anything
// else.
func ParseFieldType(
	name string, node map[string]interface{},
) (FieldType, map[string]interface{}, error) {
	ft, residual, err := parseFieldType(name, node)
	if err != nil {
		return FieldType{}, nil, errors.Wrapf(err, "invalid mapping for field [%s]", name)
	}
	return ft, residual, nil
}

func parseFieldType(
	name string, node map[string]interface{},
) (FieldType, map[string]interface{}, error) {
	opts := make(map[string]interface{}, len(node))
	origKeys := make(map[string]string, len(node))
	for k, v := range node {
		key := toUnderscoreCase(k)
		if prev, ok := origKeys[key]; ok {
			first, second := prev, k
			if second < first {
				first, second = second, first
			}
			return FieldType{}, nil, errors.Newf("option [%s] is set twice, as [%s] and [%s]", key, first, second)
		}
		origKeys[key] = k
		opts[key] = v
	}

	ft := DefaultFieldType(name)
	consumed := make(map[string]bool)
	raw := func(key string) (interface{}, bool) {
		v, ok := opts[key]
		if ok {
			consumed[key] = true
		}
		return v, ok
	}

	// The strategy decides whether points_only is an option at all, so it is
	// resolved before anything else.
	if v, ok := raw(optStrategy); ok {
		s, err := strategySetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		if ft.Strategy, err = geoindex.ParseStrategyName(s); err != nil {
			return FieldType{}, nil, err
		}
	}
	if v, ok := raw(optTree); ok {
		s, err := treeSetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		if ft.Tree, err = geoindex.ParseTreeType(s); err != nil {
			return FieldType{}, nil, err
		}
	}

	var treeLevels int
	if v, ok := raw(optTreeLevels); ok {
		levels, err := treeLevelsSetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		if max := geoindex.MaxTreeLevels(ft.Tree); int(levels) > max {
			return FieldType{}, nil, errors.Newf("[%s] must be at most %d for tree [%s], got %d",
				optTreeLevels, max, ft.Tree, levels)
		}
		treeLevels = int(levels)
	}
	var precisionLevels int
	var hasPrecision bool
	if v, ok := raw(optPrecision); ok {
		hasPrecision = true
		s, err := precisionSetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		meters, err := geo.ParseDistance(s)
		if err != nil {
			return FieldType{}, nil, err
		}
		precisionLevels = geoindex.TreeLevelsForPrecision(ft.Tree, meters)
	}
	switch {
	case treeLevels > 0 || hasPrecision:
		// The finer of the two wins.
		ft.TreeLevels = treeLevels
		if precisionLevels > ft.TreeLevels {
			ft.TreeLevels = precisionLevels
		}
		ft.DistanceErrorPct = distanceErrorPctSetting.Default()
	default:
		ft.TreeLevels = geoindex.DefaultTreeLevels(ft.Tree)
		ft.DistanceErrorPct = LegacyDistanceErrorPct
	}

	if v, ok := raw(optDistanceErrorPct); ok {
		pct, err := distanceErrorPctSetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		ft.DistanceErrorPct = pct
	}
	if v, ok := raw(optOrientation); ok {
		s, err := orientationSetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		if ft.Orientation, err = geoindex.ParseOrientation(s); err != nil {
			return FieldType{}, nil, err
		}
	}
	if v, ok := raw(optCoerce); ok {
		coerce, err := coerceSetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		ft.Coerce = coerce
	}
	if ft.Strategy == geoindex.Term {
		ft.PointsOnly = true
	} else if v, ok := raw(optPointsOnly); ok {
		pointsOnly, err := pointsOnlySetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		ft.PointsOnly = pointsOnly
	}
	if v, ok := raw(optBoost); ok {
		boost, err := boostSetting.Parse(v)
		if err != nil {
			return FieldType{}, nil, err
		}
		ft.Boost = boost
	}

	residual := make(map[string]interface{})
	for key, v := range opts {
		if !consumed[key] {
			residual[origKeys[key]] = v
		}
	}
	return ft, residual, nil
}
