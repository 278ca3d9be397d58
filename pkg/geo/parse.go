// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geo

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/wkt"
	"github.com/twpayne/go-geom"
)

const sridPrefix = "SRID="
const sridPrefixLen = len(sridPrefix)

// ParseWKT parses a WKT string with an optional EWKT "SRID=<n>;" prefix.
// The SRID of the result is defaultSRID unless the prefix names a non-zero
// SRID.
func ParseWKT(str string, defaultSRID int, opts ...wkt.Option) (geom.T, error) {
	srid := defaultSRID
	trimmed := strings.TrimLeftFunc(str, unicode.IsSpace)
	if len(trimmed) >= sridPrefixLen && strings.EqualFold(trimmed[:sridPrefixLen], sridPrefix) {
		end := strings.Index(trimmed[sridPrefixLen:], ";")
		if end == -1 {
			return nil, errors.Newf(
				"failed to find ; character with SRID declaration during EWKT decode: %q",
				str,
			)
		}
		sridInt64, err := strconv.ParseInt(strings.TrimSpace(trimmed[sridPrefixLen:sridPrefixLen+end]), 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid SRID in %q", str)
		}
		// Only override the SRID if the SRID is not zero. This is in line with
		// observed PostGIS behavior.
		if sridInt64 != 0 {
			srid = int(sridInt64)
		}
		str = trimmed[sridPrefixLen+end+1:]
	}

	t, err := wkt.Unmarshal(str, opts...)
	if err != nil {
		return nil, err
	}
	if srid != 0 {
		AdjustGeomSRID(t, srid)
	}
	return t, nil
}
