// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"encoding/hex"
	"fmt"
)

// FieldKind says which payload of a Field is set.
type FieldKind int

const (
	// FieldKindTerm is a prefix tree cell token.
	FieldKindTerm FieldKind = iota + 1
	// FieldKindPoint is a quantized lat/lon pair.
	FieldKindPoint
	// FieldKindShape is a WKB encoded shape.
	FieldKindShape
)

func (k FieldKind) String() string {
	switch k {
	case FieldKindTerm:
		return "term"
	case FieldKindPoint:
		return "point"
	case FieldKindShape:
		return "shape"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field is one indexable primitive produced for a shape.
type Field struct {
	Name string
	Kind FieldKind
	// Term is set for FieldKindTerm.
	Term string
	// Point is the encoded (lat, lon) for FieldKindPoint.
	Point [2]int32
	// Blob is the WKB for FieldKindShape.
	Blob []byte
	// Boost is the field weight. Zero means unset.
	Boost float64
}

// IndexTerm returns the token under which the field is written to the term
// index. Point terms sort in the order of their encoded coordinates.
func (f Field) IndexTerm() string {
	switch f.Kind {
	case FieldKindTerm:
		return f.Term
	case FieldKindPoint:
		return fmt.Sprintf("%08x%08x", sortableUint32(f.Point[0]), sortableUint32(f.Point[1]))
	default:
		return ""
	}
}

func sortableUint32(v int32) uint32 {
	return uint32(v) ^ 0x80000000
}

func (f Field) String() string {
	var payload string
	switch f.Kind {
	case FieldKindTerm:
		payload = f.Term
	case FieldKindPoint:
		payload = fmt.Sprintf("(%d, %d)", f.Point[0], f.Point[1])
	case FieldKindShape:
		payload = hex.EncodeToString(f.Blob)
	}
	return fmt.Sprintf("%s %s %s boost=%g", f.Name, f.Kind, payload, f.Boost)
}
