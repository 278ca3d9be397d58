// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// distanceUnits maps unit suffixes to their length in meters. Longer
// suffixes are matched first, see ParseDistance.
var distanceUnits = []struct {
	names  []string
	meters float64
}{
	{[]string{"nauticalmiles", "nmi", "NM"}, 1852},
	{[]string{"kilometers", "km"}, 1000},
	{[]string{"millimeters", "mm"}, 0.001},
	{[]string{"centimeters", "cm"}, 0.01},
	{[]string{"miles", "mi"}, 1609.344},
	{[]string{"yards", "yd"}, 0.9144},
	{[]string{"feet", "ft"}, 0.3048},
	{[]string{"inch", "in"}, 0.0254},
	{[]string{"meters", "m"}, 1},
}

// ParseDistance parses a distance such as "50m", "1.5km" or "10mi" into
// meters. A bare number is in meters.
func ParseDistance(s string) (float64, error) {
	str := strings.TrimSpace(s)
	meters := 1.0
	var matched string
	for _, u := range distanceUnits {
		for _, name := range u.names {
			if len(name) > len(matched) && strings.HasSuffix(str, name) {
				matched, meters = name, u.meters
			}
		}
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, matched)), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Newf("failed to parse distance %q", s)
	}
	if value < 0 {
		return 0, errors.Newf("distance %q must not be negative", s)
	}
	return value * meters, nil
}
