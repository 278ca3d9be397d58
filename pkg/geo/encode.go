// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geopb"
	"github.com/pierrre/geohash"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/kml"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
	"github.com/twpayne/go-geom/encoding/wkbhex"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// DefaultGeoJSONDecimalDigits is the default number of digits coordinates in GeoJSON.
const DefaultGeoJSONDecimalDigits = 9

// FullPrecisionDecimalDigits disables rounding in the WKT encoder.
const FullPrecisionDecimalDigits = -1

// DefaultWKBEncodingFormat is the byte order used for WKB output.
var DefaultWKBEncodingFormat binary.ByteOrder = binary.LittleEndian

// ErrOutOfBounds is returned when a coordinate lies outside the lat/lng
// domain.
var ErrOutOfBounds = errors.New("shape has bounds greater than the bounds of lat/lng")

// ToWKT transforms a shape to its canonical WKT. A negative maxDecimalDigits
// keeps full precision.
func ToWKT(t geom.T, maxDecimalDigits int) (string, error) {
	if maxDecimalDigits < 0 {
		return wkt.Marshal(t)
	}
	return wkt.Marshal(t, wkt.EncodeOptionWithMaxDecimalDigits(maxDecimalDigits))
}

// ToEWKT transforms a shape to EWKT, prefixing the SRID when it is set.
func ToEWKT(t geom.T, maxDecimalDigits int) (string, error) {
	ret, err := ToWKT(t, maxDecimalDigits)
	if err != nil {
		return "", err
	}
	if t.SRID() != 0 {
		ret = fmt.Sprintf("SRID=%d;%s", t.SRID(), ret)
	}
	return ret, nil
}

// ToWKB transforms a shape to WKB. Empty points are written with NaN
// coordinates.
func ToWKB(t geom.T, byteOrder binary.ByteOrder) ([]byte, error) {
	return wkb.Marshal(t, byteOrder, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
}

// ToWKBHex transforms a shape to upper case hex encoded WKB.
func ToWKBHex(t geom.T) (string, error) {
	ret, err := wkbhex.Encode(t, DefaultWKBEncodingFormat, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
	return strings.ToUpper(ret), err
}

// GeoJSONFlag controls optional members of the GeoJSON output.
type GeoJSONFlag int

const (
	// GeoJSONFlagIncludeBBox adds a "bbox" member for non-empty shapes.
	GeoJSONFlagIncludeBBox GeoJSONFlag = 1 << (iota)
	// GeoJSONFlagShortCRS adds a "crs" member of the form EPSG:<srid> when
	// the SRID is set.
	GeoJSONFlagShortCRS

	GeoJSONFlagZero = 0
)

// ToGeoJSON transforms a shape to GeoJSON.
func ToGeoJSON(t geom.T, maxDecimalDigits int, flag GeoJSONFlag) ([]byte, error) {
	options := []geojson.EncodeGeometryOption{
		geojson.EncodeGeometryWithMaxDecimalDigits(maxDecimalDigits),
	}
	if flag&GeoJSONFlagIncludeBBox != 0 {
		// Do not encode empty bounding boxes.
		if !IsEmpty(t) {
			options = append(options, geojson.EncodeGeometryWithBBox())
		}
	}
	if flag&GeoJSONFlagShortCRS != 0 && t.SRID() != 0 {
		options = append(options, geojson.EncodeGeometryWithCRS(&geojson.CRS{
			Type: "name",
			Properties: map[string]interface{}{
				"name": fmt.Sprintf("EPSG:%d", t.SRID()),
			},
		}))
	}
	return geojson.Marshal(t, options...)
}

// ToKML transforms a shape to KML.
func ToKML(t geom.T) (string, error) {
	kmlElement, err := kml.Encode(t)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := kmlElement.Write(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GeoHashAutoPrecision means to calculate the precision of GeoHash
// based on input, up to GeoHashMaxPrecision characters.
const GeoHashAutoPrecision = 0

// GeoHashMaxPrecision is the maximum precision for GeoHashes.
// 20 is picked as doubles have 51 decimals of precision, and each base32 position
// can contain 5 bits of data. As we have two points, we use floor((2 * 51) / 5) = 20.
const GeoHashMaxPrecision = 20

// GeoHash transforms a shape to the geohash of its bounding box center. An
// empty shape has no geohash.
func GeoHash(t geom.T, p int) (string, error) {
	bbox := BoundingBoxFromGeomT(t)
	if bbox == nil {
		return "", nil
	}
	if err := CheckLatLngBounds(bbox); err != nil {
		return "", err
	}

	// Get precision using the bounding box if required.
	if p <= GeoHashAutoPrecision {
		p = getPrecisionForBBox(bbox)
	}

	// Support up to 20, which is the same as PostGIS.
	if p > GeoHashMaxPrecision {
		p = GeoHashMaxPrecision
	}

	bbCenterLng, bbCenterLat := bbox.Center()
	return geohash.Encode(bbCenterLat, bbCenterLng, p), nil
}

// CheckLatLngBounds returns ErrOutOfBounds if bbox leaves the lat/lng domain.
func CheckLatLngBounds(bbox *geopb.BoundingBox) error {
	if bbox.LoX < -180 || bbox.HiX > 180 || bbox.LoY < -90 || bbox.HiY > 90 {
		return errors.Wrapf(ErrOutOfBounds, "got (%f %f, %f %f)",
			bbox.LoX, bbox.LoY,
			bbox.HiX, bbox.HiY,
		)
	}
	return nil
}

// getPrecisionForBBox is a function imitating PostGIS's ability to go from
// a world bounding box and truncating a GeoHash to fit the given bounding box.
// The algorithm halves the world bounding box until it intersects with the
// feature bounding box to get a precision that will encompass the entire
// bounding box.
func getPrecisionForBBox(bbox *geopb.BoundingBox) int {
	bitPrecision := 0

	// This is a point, for points we use the full bitPrecision.
	if bbox.IsPoint() {
		return GeoHashMaxPrecision
	}

	// Starts from a world bounding box:
	lonMin := -180.0
	lonMax := 180.0
	latMin := -90.0
	latMax := 90.0

	// Each iteration shrinks the world bounding box by half in the dimension that
	// does not fit, making adjustments each iteration until it intersects with
	// the object bbox.
	for {
		lonWidth := lonMax - lonMin
		latWidth := latMax - latMin
		latMaxDelta, lonMaxDelta, latMinDelta, lonMinDelta := 0.0, 0.0, 0.0, 0.0

		if bbox.LoX > lonMin+lonWidth/2.0 {
			lonMinDelta = lonWidth / 2.0
		} else if bbox.HiX < lonMax-lonWidth/2.0 {
			lonMaxDelta = lonWidth / -2.0
		}
		if bbox.LoY > latMin+latWidth/2.0 {
			latMinDelta = latWidth / 2.0
		} else if bbox.HiY < latMax-latWidth/2.0 {
			latMaxDelta = latWidth / -2.0
		}

		// Every change we make that splits the box up adds precision.
		// If we detect no change, we've intersected a box and so must exit.
		precisionDelta := 0
		if lonMinDelta != 0.0 || lonMaxDelta != 0.0 {
			lonMin += lonMinDelta
			lonMax += lonMaxDelta
			precisionDelta++
		} else {
			break
		}
		if latMinDelta != 0.0 || latMaxDelta != 0.0 {
			latMin += latMinDelta
			latMax += latMaxDelta
			precisionDelta++
		} else {
			break
		}
		bitPrecision += precisionDelta
	}
	// Each character can represent 5 bits of bitPrecision.
	// As such, divide by 5 to get GeoHash precision.
	return bitPrecision / 5
}

// StringToByteOrder returns the byte order of string.
func StringToByteOrder(s string) binary.ByteOrder {
	switch strings.ToLower(s) {
	case "ndr":
		return binary.LittleEndian
	case "xdr":
		return binary.BigEndian
	default:
		return DefaultWKBEncodingFormat
	}
}
