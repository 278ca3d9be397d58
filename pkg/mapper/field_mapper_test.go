// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/wkt"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func mustFieldMapper(t *testing.T, ft FieldType, metrics *Metrics) *FieldMapper {
	m, err := NewFieldMapper(ft, metrics)
	require.NoError(t, err)
	return m
}

func TestFieldMapperParse(t *testing.T) {
	ctx := context.Background()
	metrics := NewMetrics(prometheus.NewRegistry())
	m := mustFieldMapper(t, DefaultFieldType("location"), metrics)

	fields, err := m.Parse(ctx, "POINT (13.400544 52.530286)")
	require.NoError(t, err)
	require.Len(t, fields, 9)
	require.Equal(t, 1.0, counterValue(t, metrics.ValuesParsed))
	require.Equal(t, 9.0, counterValue(t, metrics.FieldsEmitted))

	// SRID prefixes are accepted.
	fields, err = m.Parse(ctx, "SRID=4326;POINT (13.400544 52.530286)")
	require.NoError(t, err)
	require.Len(t, fields, 9)

	fields, err = m.Parse(ctx, nil)
	require.NoError(t, err)
	require.Nil(t, fields)
	require.Equal(t, 1.0, counterValue(t, metrics.ValuesAbsent))
	require.Equal(t, 2.0, counterValue(t, metrics.ValuesParsed))
}

func TestFieldMapperErrors(t *testing.T) {
	ctx := context.Background()
	metrics := NewMetrics(prometheus.NewRegistry())
	ft := DefaultFieldType("location")
	ft.PointsOnly = true
	m := mustFieldMapper(t, ft, metrics)

	_, err := m.Parse(ctx, 42)
	require.True(t, errors.Is(err, ErrNotAString), "%v", err)
	require.EqualError(t, err, "failed to parse [location]: got int: location must be a WKT string")

	_, err = m.Parse(ctx, "POINT (1 2")
	var pe *wkt.ParseError
	require.True(t, errors.As(err, &pe), "%v", err)
	require.Equal(t, wkt.MismatchedParens, pe.Kind)
	require.Contains(t, err.Error(), "failed to parse [location]")

	_, err = m.Parse(ctx, "POLYGON ((0 0, 1 0, 1 1, 0 0))")
	var violation *PointsOnlyViolationError
	require.True(t, errors.As(err, &violation), "%v", err)

	_, err = m.Parse(ctx, "POINT (1 95)")
	require.True(t, errors.Is(err, geoindex.ErrOutOfBounds), "%v", err)

	rejected := func(reason string) float64 {
		return counterValue(t, metrics.ValuesRejected.WithLabelValues(reason))
	}
	require.Equal(t, 1.0, rejected(reasonNotAString))
	require.Equal(t, 1.0, rejected(wkt.MismatchedParens.String()))
	require.Equal(t, 1.0, rejected(reasonPointsOnly))
	require.Equal(t, 1.0, rejected(reasonBackend))
	require.Equal(t, 0.0, counterValue(t, metrics.ValuesParsed))
}

func TestFieldMapperCoerce(t *testing.T) {
	ctx := context.Background()
	const unclosed = "POLYGON ((13 52, 14 52, 14 53, 13 53))"

	strict := mustFieldMapper(t, DefaultFieldType("location"), nil)
	_, err := strict.Parse(ctx, unclosed)
	kind, ok := wkt.KindOf(err)
	require.True(t, ok)
	require.Equal(t, wkt.InvalidRing, kind)

	ft := DefaultFieldType("location")
	ft.Coerce = true
	lenient := mustFieldMapper(t, ft, nil)
	fields, err := lenient.Parse(ctx, unclosed)
	require.NoError(t, err)
	require.NotEmpty(t, fields)
}

func TestNewFieldMapperInvalidConfig(t *testing.T) {
	ft := DefaultFieldType("location")
	ft.TreeLevels = 40
	_, err := NewFieldMapper(ft, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid mapping for field [location]")
}

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewMetrics(reg)
	require.Panics(t, func() { NewMetrics(reg) })
	_ = NewMetrics(nil)
}
