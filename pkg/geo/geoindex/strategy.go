// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package geoindex turns shapes into indexable fields and keeps them in an
// in-memory inverted index.
//
// Three strategies are provided:
//   - RecursivePrefixTree indexes points as the chain of prefix tree cells
//     containing them and other shapes as a bounded covering of cells.
//   - Term indexes only points, as RecursivePrefixTree does.
//   - BKD indexes points as quantized coordinates and other shapes as WKB.
//
// Prefix trees come in two flavors, geohash cells and s2 cells (quadtree).
// The term Store is a btree keyed by (field, term, document).
package geoindex

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/twpayne/go-geom"
)

// ErrOutOfBounds is returned for shapes with coordinates outside the
// lat/lng domain.
var ErrOutOfBounds = geo.ErrOutOfBounds

// ErrTermStrategyPointsOnly is returned by the term strategy for anything
// but a point.
var ErrTermStrategyPointsOnly = errors.New("term strategy only supports points")

// Strategy produces the indexable fields of a shape. Implementations are
// immutable and safe for concurrent use.
type Strategy interface {
	// Name returns the strategy name.
	Name() StrategyName
	// CreateIndexableFields returns the fields for g. An empty shape has no
	// fields.
	CreateIndexableFields(ctx context.Context, g geom.T) ([]Field, error)
}

// NewStrategy returns the named strategy for the config.
func NewStrategy(name StrategyName, cfg Config) (Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch name {
	case RecursivePrefixTree:
		return &recursiveStrategy{cfg: cfg, tree: NewPrefixTree(cfg.Tree, cfg.MaxLevels())}, nil
	case Term:
		return &termStrategy{recursiveStrategy{cfg: cfg, tree: NewPrefixTree(cfg.Tree, cfg.MaxLevels())}}, nil
	case BKD:
		return &bkdStrategy{cfg: cfg}, nil
	default:
		return nil, errors.Newf("unknown strategy [%s]", name)
	}
}

// checkBounds returns ErrOutOfBounds if g leaves the lat/lng domain.
func checkBounds(g geom.T) error {
	bbox := geo.BoundingBoxFromGeomT(g)
	if bbox == nil {
		return nil
	}
	return geo.CheckLatLngBounds(bbox)
}

// recursiveStrategy indexes shapes as prefix tree cells.
type recursiveStrategy struct {
	cfg  Config
	tree PrefixTree
}

var _ Strategy = (*recursiveStrategy)(nil)

func (s *recursiveStrategy) Name() StrategyName { return RecursivePrefixTree }

// Tree returns the prefix tree of the strategy.
func (s *recursiveStrategy) Tree() PrefixTree { return s.tree }

func (s *recursiveStrategy) CreateIndexableFields(
	ctx context.Context, g geom.T,
) ([]Field, error) {
	if err := checkBounds(g); err != nil {
		return nil, err
	}
	var set termSet
	if err := geo.ForEachComponent(g, func(c geom.T) error {
		return s.addComponent(&set, c)
	}); err != nil {
		return nil, err
	}
	log.VEventf(ctx, 3, "%s tree produced %d terms", s.tree.Type(), len(set.terms))
	return termFields(s.cfg.FieldName, set.terms), nil
}

func (s *recursiveStrategy) addComponent(set *termSet, c geom.T) error {
	if geo.IsEmpty(c) {
		return nil
	}
	switch c := c.(type) {
	case *geom.Point, *geom.MultiPoint:
		flatCoords := c.FlatCoords()
		stride := c.Stride()
		for i := 0; i < len(flatCoords); i += stride {
			for _, term := range s.tree.PointTerms(flatCoords[i+1], flatCoords[i]) {
				set.add(term)
			}
		}
	case *geom.LineString, *geom.Polygon, *geom.MultiLineString, *geom.MultiPolygon:
		bbox := geo.BoundingBoxFromGeomT(c)
		level := s.tree.LevelForDistance(distanceForErrPct(bbox, s.cfg.DistanceErrorPct))
		for _, term := range s.tree.CoverTerms(bbox, level) {
			set.add(term)
		}
	default:
		return errors.AssertionFailedf("unexpected geom type %T", c)
	}
	return nil
}

func termFields(name string, terms []string) []Field {
	if len(terms) == 0 {
		return nil
	}
	fields := make([]Field, len(terms))
	for i, term := range terms {
		fields[i] = Field{Name: name, Kind: FieldKindTerm, Term: term}
	}
	return fields
}

// termStrategy indexes points as their full prefix chain and rejects every
// other shape.
type termStrategy struct {
	recursiveStrategy
}

var _ Strategy = (*termStrategy)(nil)

func (s *termStrategy) Name() StrategyName { return Term }

func (s *termStrategy) CreateIndexableFields(ctx context.Context, g geom.T) ([]Field, error) {
	if _, ok := g.(*geom.Point); !ok {
		shapeType, err := geo.ShapeTypeOf(g)
		if err != nil {
			return nil, err
		}
		return nil, errors.Wrapf(ErrTermStrategyPointsOnly, "found %s", shapeType)
	}
	return s.recursiveStrategy.CreateIndexableFields(ctx, g)
}
