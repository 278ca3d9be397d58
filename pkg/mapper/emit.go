// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/twpayne/go-geom"
)

// EmitConfig controls how a shape is turned into fields.
type EmitConfig struct {
	// Field is the name of the mapped field, used in errors.
	Field string
	// PointsOnly rejects every shape that is not a single point.
	PointsOnly bool
	// Strategy is the strategy the backend is expected to implement.
	Strategy geoindex.StrategyName
	// Boost is attached to every emitted field.
	Boost float64
}

// PointsOnlyViolationError is returned when a points only field receives a
// shape that is not a point.
type PointsOnlyViolationError struct {
	Field      string
	ActualType geo.ShapeType
}

func (e *PointsOnlyViolationError) Error() string {
	return fmt.Sprintf("[%s] is configured for points only but a %s was found", e.Field, e.ActualType)
}

// Emit validates g against cfg and returns the fields the backend creates
// for it. A nil result with a nil error means there is nothing to index.
// Backend errors are returned unchanged.
func Emit(
	ctx context.Context, g geom.T, cfg EmitConfig, backend geoindex.Strategy,
) ([]geoindex.Field, error) {
	if backend.Name() != cfg.Strategy {
		return nil, errors.AssertionFailedf("field [%s] expects strategy %s but the backend is %s",
			cfg.Field, cfg.Strategy, backend.Name())
	}
	if cfg.PointsOnly {
		if _, ok := g.(*geom.Point); !ok {
			shapeType, err := geo.ShapeTypeOf(g)
			if err != nil {
				return nil, err
			}
			return nil, &PointsOnlyViolationError{Field: cfg.Field, ActualType: shapeType}
		}
	}

	fields, err := backend.CreateIndexableFields(ctx, g)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		log.VEventf(ctx, 2, "nothing to index")
		return nil, nil
	}
	for i := range fields {
		fields[i].Boost = cfg.Boost
	}
	return fields, nil
}
