// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"context"
	"math"

	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/twpayne/go-geom"
)

const (
	latScale  = float64(1<<32) / 180.0
	latDecode = 1 / latScale
	lonScale  = float64(1<<32) / 360.0
	lonDecode = 1 / lonScale
)

// EncodeLatitude quantizes a latitude in [-90, 90] to an int32, rounding
// down.
func EncodeLatitude(lat float64) int32 {
	// 90 itself would overflow.
	if lat == 90 {
		lat = math.Nextafter(lat, 0)
	}
	return int32(math.Floor(lat / latDecode))
}

// EncodeLongitude quantizes a longitude in [-180, 180] to an int32,
// rounding down.
func EncodeLongitude(lng float64) int32 {
	if lng == 180 {
		lng = math.Nextafter(lng, 0)
	}
	return int32(math.Floor(lng / lonDecode))
}

// DecodeLatitude returns the lower bound of an encoded latitude.
func DecodeLatitude(enc int32) float64 {
	return float64(enc) * latDecode
}

// DecodeLongitude returns the lower bound of an encoded longitude.
func DecodeLongitude(enc int32) float64 {
	return float64(enc) * lonDecode
}

// bkdStrategy indexes points as quantized coordinate pairs and other shapes
// as WKB with normalized ring orientation. Only points are checked against
// the lat/lng bounds; other shapes are stored as given.
type bkdStrategy struct {
	cfg Config
}

var _ Strategy = (*bkdStrategy)(nil)

func (s *bkdStrategy) Name() StrategyName { return BKD }

func (s *bkdStrategy) CreateIndexableFields(ctx context.Context, g geom.T) ([]Field, error) {
	if geo.IsEmpty(g) {
		return nil, nil
	}
	switch g := g.(type) {
	case *geom.Point, *geom.MultiPoint:
		if err := checkBounds(g); err != nil {
			return nil, err
		}
		flatCoords := g.FlatCoords()
		stride := g.Stride()
		fields := make([]Field, 0, len(flatCoords)/stride)
		for i := 0; i < len(flatCoords); i += stride {
			fields = append(fields, Field{
				Name:  s.cfg.FieldName,
				Kind:  FieldKindPoint,
				Point: [2]int32{EncodeLatitude(flatCoords[i+1]), EncodeLongitude(flatCoords[i])},
			})
		}
		return fields, nil
	default:
		oriented := Orient(g, s.cfg.Orientation)
		blob, err := geo.ToWKB(oriented, geo.DefaultWKBEncodingFormat)
		if err != nil {
			return nil, err
		}
		log.VEventf(ctx, 3, "encoded %d byte shape", len(blob))
		return []Field{{Name: s.cfg.FieldName, Kind: FieldKindShape, Blob: blob}}, nil
	}
}
