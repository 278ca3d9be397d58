// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons used as the "reason" label of the rejected counter,
// besides the kinds of WKT parse errors.
const (
	reasonNotAString = "NotAString"
	reasonPointsOnly = "PointsOnly"
	reasonBackend    = "Backend"
	reasonOther      = "Other"
)

// Metrics counts the values seen by field mappers.
type Metrics struct {
	ValuesParsed   prometheus.Counter
	ValuesAbsent   prometheus.Counter
	ValuesRejected *prometheus.CounterVec
	FieldsEmitted  prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValuesParsed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wkt_mapper",
			Name:      "values_parsed_total",
			Help:      "Number of wkt values successfully turned into fields.",
		}),
		ValuesAbsent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wkt_mapper",
			Name:      "values_absent_total",
			Help:      "Number of null wkt values skipped.",
		}),
		ValuesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wkt_mapper",
			Name:      "values_rejected_total",
			Help:      "Number of wkt values rejected, by reason.",
		}, []string{"reason"}),
		FieldsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wkt_mapper",
			Name:      "fields_emitted_total",
			Help:      "Number of indexable fields emitted.",
		}),
	}
}
