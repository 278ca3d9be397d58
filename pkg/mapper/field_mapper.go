// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/mapper-wkt/pkg/geo"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/wkt"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/cockroachdb/redact"
)

// ErrNotAString is returned for a field value that is neither null nor a
// string.
var ErrNotAString = errors.New("location must be a WKT string")

// FieldMapper turns the values of one wkt field into indexable fields. It
// is immutable and safe for concurrent use.
type FieldMapper struct {
	fieldType FieldType
	strategy  geoindex.Strategy
	metrics   *Metrics
	// rejectLog rate limits the warnings about rejected values.
	rejectLog *log.EveryN
}

// rejectLogInterval is the minimum interval between two warnings about
// rejected values of one field.
const rejectLogInterval = 10 * time.Second

// NewFieldMapper returns a mapper for the field type. A nil metrics
// disables counting.
func NewFieldMapper(ft FieldType, metrics *Metrics) (*FieldMapper, error) {
	strategy, err := geoindex.NewStrategy(ft.Strategy, ft.StrategyConfig())
	if err != nil {
		return nil, errors.Wrapf(err, "invalid mapping for field [%s]", ft.Name)
	}
	return &FieldMapper{
		fieldType: ft,
		strategy:  strategy,
		metrics:   metrics,
		rejectLog: log.Every(rejectLogInterval),
	}, nil
}

// Name returns the field name.
func (m *FieldMapper) Name() string { return m.fieldType.Name }

// FieldType returns the field configuration.
func (m *FieldMapper) FieldType() FieldType { return m.fieldType }

// Parse turns a decoded document value into fields. A nil value is absent
// and yields no fields. Errors name the field and keep their cause.
func (m *FieldMapper) Parse(ctx context.Context, value interface{}) ([]geoindex.Field, error) {
	ctx = logtags.AddTag(ctx, "field", m.fieldType.Name)
	if value == nil {
		m.countAbsent()
		return nil, nil
	}
	fields, err := m.parse(ctx, value)
	if err != nil {
		m.countRejected(err)
		if m.rejectLog.ShouldLog() {
			log.Warningf(ctx, "rejected value: %v", err)
		}
		return nil, errors.Wrapf(err, "failed to parse [%s]", redact.Safe(m.fieldType.Name))
	}
	m.countParsed(len(fields))
	return fields, nil
}

func (m *FieldMapper) parse(ctx context.Context, value interface{}) ([]geoindex.Field, error) {
	str, ok := value.(string)
	if !ok {
		return nil, errors.Wrapf(ErrNotAString, "got %T", value)
	}
	g, err := geo.ParseWKT(str, 0 /* defaultSRID */, wkt.WithCoerce(m.fieldType.Coerce))
	if err != nil {
		return nil, err
	}
	log.VEventf(ctx, 2, "parsed %s", str)
	return Emit(ctx, g, m.fieldType.EmitConfig(), m.strategy)
}

func (m *FieldMapper) countAbsent() {
	if m.metrics != nil {
		m.metrics.ValuesAbsent.Inc()
	}
}

func (m *FieldMapper) countParsed(fields int) {
	if m.metrics != nil {
		m.metrics.ValuesParsed.Inc()
		m.metrics.FieldsEmitted.Add(float64(fields))
	}
}

func (m *FieldMapper) countRejected(err error) {
	if m.metrics == nil {
		return
	}
	m.metrics.ValuesRejected.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	if kind, ok := wkt.KindOf(err); ok {
		return kind.String()
	}
	var pointsOnly *PointsOnlyViolationError
	switch {
	case errors.Is(err, ErrNotAString):
		return reasonNotAString
	case errors.As(err, &pointsOnly):
		return reasonPointsOnly
	case errors.Is(err, geoindex.ErrOutOfBounds), errors.Is(err, geoindex.ErrTermStrategyPointsOnly):
		return reasonBackend
	default:
		return reasonOther
	}
}
