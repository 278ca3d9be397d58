// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package wkt parses Well-Known Text into go-geom geometries.
//
// The parser is a recursive descent over the token stream produced by
// wktLex. Function names follow the productions of the OGC grammar:
// functions named after a production consume the tokens of that
// production and build the corresponding value.
package wkt

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
)

// DefaultMaxDepth is the default limit on GEOMETRYCOLLECTION nesting.
const DefaultMaxDepth = 32

// Option configures Unmarshal.
type Option func(*parser)

// WithCoerce controls whether unclosed polygon rings are closed by
// repeating their first point instead of failing with InvalidRing.
func WithCoerce(coerce bool) Option {
	return func(p *parser) {
		p.coerce = coerce
	}
}

// WithMaxDepth sets the number of GEOMETRYCOLLECTIONs that may be nested
// inside one another.
func WithMaxDepth(depth int) Option {
	return func(p *parser) {
		p.maxDepth = depth
	}
}

// Unmarshal parses a WKT string into a geometry. Keywords are matched
// case-insensitively and any whitespace may separate tokens. Parsing stops
// at the first error, which is always a *ParseError.
func Unmarshal(text string, opts ...Option) (geom.T, error) {
	p := &parser{
		lex:      makeWktLex(text),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse()
}

type parser struct {
	lex       wktLex
	peeked    token
	hasPeeked bool

	// layout is fixed by the first dimension marker or the first coordinate
	// and shared by every geometry in the input.
	layout   geom.Layout
	depth    int
	maxDepth int
	coerce   bool
}

func (p *parser) next() (token, error) {
	if p.hasPeeked {
		p.hasPeeked = false
		return p.peeked, nil
	}
	return p.lex.lex()
}

func (p *parser) peek() (token, error) {
	if !p.hasPeeked {
		tok, err := p.lex.lex()
		if err != nil {
			return token{}, err
		}
		p.peeked, p.hasPeeked = tok, true
	}
	return p.peeked, nil
}

func (p *parser) errorf(kind ErrorKind, pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Pos:     pos,
		Input:   p.lex.line,
		Message: "syntax error: " + fmt.Sprintf(format, args...),
	}
}

// unexpected builds the error for tok appearing where one of the expected
// tokens should be. Running out of input is always reported as a
// parenthesis mismatch, since every production that can be cut short ends
// with a ')'.
func (p *parser) unexpected(tok token, expected string) *ParseError {
	if tok.kind == tokEOF {
		return p.errorf(MismatchedParens, tok.pos, "unexpected end of input, expecting %s", expected)
	}
	return p.errorf(UnexpectedToken, tok.pos, "unexpected %s, expecting %s", tok.describe(), expected)
}

func (p *parser) parse() (geom.T, error) {
	if strings.TrimSpace(p.lex.line) == "" {
		return nil, &ParseError{
			Kind:    EmptyInput,
			Input:   p.lex.line,
			Message: "syntax error: empty input",
		}
	}
	g, err := p.geometryTaggedText()
	if err != nil {
		return nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokEOF:
		return g, nil
	case tokRParen:
		return nil, p.errorf(MismatchedParens, tok.pos, "unbalanced ')'")
	default:
		return nil, p.unexpected(tok, "end of input")
	}
}

// geometryTaggedText parses a geometry type keyword with its optional
// dimension marker, then the geometry's text.
func (p *parser) geometryTaggedText() (geom.T, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokKeyword {
		return nil, p.unexpected(tok, "geometry type")
	}
	typ, layout, ok := geometryKeyword(tok.str)
	if !ok {
		return nil, p.errorf(UnknownKeyword, tok.pos, "unexpected keyword %q, expecting geometry type", tok.str)
	}
	if layout == geom.NoLayout {
		marker, err := p.peek()
		if err != nil {
			return nil, err
		}
		if marker.kind == tokKeyword {
			if l, ok := dimensionKeyword(marker.str); ok {
				if _, err := p.next(); err != nil {
					return nil, err
				}
				layout = l
			}
		}
	}
	if layout != geom.NoLayout {
		if err := p.setLayout(layout, tok.pos); err != nil {
			return nil, err
		}
	}

	switch typ {
	case kwPoint:
		return p.pointText()
	case kwLineString:
		return p.lineStringText()
	case kwPolygon:
		return p.polygonText()
	case kwMultiPoint:
		return p.multiPointText()
	case kwMultiLineString:
		return p.multiLineStringText()
	case kwMultiPolygon:
		return p.multiPolygonText()
	case kwGeometryCollection:
		return p.geometryCollectionText(tok.pos)
	default:
		return nil, errors.AssertionFailedf("unhandled geometry keyword %s", typ)
	}
}

func (p *parser) pointText() (geom.T, error) {
	empty, err := p.emptySetOrLeftParen()
	if err != nil {
		return nil, err
	}
	if empty {
		return geom.NewPointEmpty(p.layoutOrXY()), nil
	}
	flat, err := p.point(nil)
	if err != nil {
		return nil, err
	}
	if err := p.rightParen(); err != nil {
		return nil, err
	}
	return geom.NewPointFlat(p.layout, flat), nil
}

func (p *parser) lineStringText() (geom.T, error) {
	empty, err := p.emptySetOrLeftParen()
	if err != nil {
		return nil, err
	}
	if empty {
		return geom.NewLineString(p.layoutOrXY()), nil
	}
	start, err := p.peek()
	if err != nil {
		return nil, err
	}
	flat, err := p.lineString(nil, start.pos)
	if err != nil {
		return nil, err
	}
	return geom.NewLineStringFlat(p.layout, flat), nil
}

func (p *parser) polygonText() (geom.T, error) {
	flat, ends, err := p.polygon(nil)
	if err != nil {
		return nil, err
	}
	if len(ends) == 0 {
		return geom.NewPolygon(p.layoutOrXY()), nil
	}
	return geom.NewPolygonFlat(p.layout, flat, ends), nil
}

func (p *parser) multiPointText() (geom.T, error) {
	empty, err := p.emptySetOrLeftParen()
	if err != nil {
		return nil, err
	}
	if empty {
		return geom.NewMultiPoint(p.layoutOrXY()), nil
	}
	var flat []float64
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.kind == tokLParen:
			// Both MULTIPOINT ((1 2), (3 4)) and the PostGIS style
			// MULTIPOINT (1 2, 3 4) are accepted.
			if _, err := p.next(); err != nil {
				return nil, err
			}
			if flat, err = p.point(flat); err != nil {
				return nil, err
			}
			if err := p.rightParen(); err != nil {
				return nil, err
			}
		case tok.kind == tokKeyword && tok.str == kwEmpty:
			return nil, p.errorf(UnexpectedToken, tok.pos, "EMPTY points are not supported in MULTIPOINT")
		default:
			if flat, err = p.point(flat); err != nil {
				return nil, err
			}
		}
		more, err := p.commaOrRightParen()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return geom.NewMultiPointFlat(p.layout, flat), nil
}

func (p *parser) multiLineStringText() (geom.T, error) {
	empty, err := p.emptySetOrLeftParen()
	if err != nil {
		return nil, err
	}
	if empty {
		return geom.NewMultiLineString(p.layoutOrXY()), nil
	}
	var flat []float64
	var ends []int
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		memberEmpty, err := p.emptySetOrLeftParen()
		if err != nil {
			return nil, err
		}
		if !memberEmpty {
			if flat, err = p.lineString(flat, tok.pos); err != nil {
				return nil, err
			}
		}
		ends = append(ends, len(flat))
		more, err := p.commaOrRightParen()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return geom.NewMultiLineStringFlat(p.layoutOrXY(), flat, ends), nil
}

func (p *parser) multiPolygonText() (geom.T, error) {
	empty, err := p.emptySetOrLeftParen()
	if err != nil {
		return nil, err
	}
	if empty {
		return geom.NewMultiPolygon(p.layoutOrXY()), nil
	}
	var flat []float64
	var endss [][]int
	for {
		var ends []int
		if flat, ends, err = p.polygon(flat); err != nil {
			return nil, err
		}
		endss = append(endss, ends)
		more, err := p.commaOrRightParen()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return geom.NewMultiPolygonFlat(p.layoutOrXY(), flat, endss), nil
}

func (p *parser) geometryCollectionText(pos int) (geom.T, error) {
	if p.depth >= p.maxDepth {
		return nil, p.errorf(DepthExceeded, pos, "geometry collections nested deeper than %d levels", p.maxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()

	gc := geom.NewGeometryCollection()
	empty, err := p.emptySetOrLeftParen()
	if err != nil {
		return nil, err
	}
	if empty {
		if p.layout != geom.NoLayout {
			// An empty collection has no members to check the layout against.
			gc.MustSetLayout(p.layout)
		}
		return gc, nil
	}
	for {
		g, err := p.geometryTaggedText()
		if err != nil {
			return nil, err
		}
		if err := gc.Push(g); err != nil {
			return nil, err
		}
		more, err := p.commaOrRightParen()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return gc, nil
}

// polygon parses a polygon's rings, appending their coordinates to flat.
// An EMPTY polygon returns no ends.
func (p *parser) polygon(flat []float64) ([]float64, []int, error) {
	empty, err := p.emptySetOrLeftParen()
	if err != nil {
		return nil, nil, err
	}
	if empty {
		return flat, nil, nil
	}
	var ends []int
	for {
		tok, err := p.next()
		if err != nil {
			return nil, nil, err
		}
		if tok.kind != tokLParen {
			return nil, nil, p.unexpected(tok, "'('")
		}
		if flat, err = p.ring(flat, tok.pos); err != nil {
			return nil, nil, err
		}
		ends = append(ends, len(flat))
		more, err := p.commaOrRightParen()
		if err != nil {
			return nil, nil, err
		}
		if !more {
			break
		}
	}
	return flat, ends, nil
}

// ring parses the points of a linear ring after its opening parenthesis
// and checks that it is closed and has at least four points.
func (p *parser) ring(flat []float64, pos int) ([]float64, error) {
	start := len(flat)
	flat, err := p.points(flat)
	if err != nil {
		return nil, err
	}
	stride := p.layout.Stride()
	last := len(flat) - stride
	if flat[start] != flat[last] || flat[start+1] != flat[last+1] {
		if !p.coerce {
			err := p.errorf(InvalidRing, pos, "polygon ring is not closed")
			err.Hint = "the first and last points of a ring must be equal; enable coerce to close rings automatically"
			return nil, err
		}
		flat = append(flat, flat[start:start+stride]...)
	}
	if n := (len(flat) - start) / stride; n < 4 {
		return nil, p.errorf(InvalidRing, pos, "polygon ring must have at least 4 points, found %d", n)
	}
	return flat, nil
}

// lineString parses the points of a line string after its opening
// parenthesis. A non-empty line string needs at least two points.
func (p *parser) lineString(flat []float64, pos int) ([]float64, error) {
	start := len(flat)
	flat, err := p.points(flat)
	if err != nil {
		return nil, err
	}
	if n := (len(flat) - start) / p.layout.Stride(); n < 2 {
		return nil, p.errorf(InvalidLineString, pos, "line string must have at least 2 points, found %d", n)
	}
	return flat, nil
}

// points parses a comma separated list of points up to and including the
// closing parenthesis.
func (p *parser) points(flat []float64) ([]float64, error) {
	for {
		var err error
		if flat, err = p.point(flat); err != nil {
			return nil, err
		}
		more, err := p.commaOrRightParen()
		if err != nil {
			return nil, err
		}
		if !more {
			return flat, nil
		}
	}
}

// point parses a single coordinate tuple and appends it to flat.
func (p *parser) point(flat []float64) ([]float64, error) {
	first, err := p.next()
	if err != nil {
		return nil, err
	}
	if first.kind != tokNum {
		return nil, p.unexpected(first, "number")
	}
	flat = append(flat, first.num)
	stride := 1
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokNum {
			break
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		flat = append(flat, tok.num)
		stride++
	}
	if err := p.validateStride(stride, first.pos); err != nil {
		return nil, err
	}
	return flat, nil
}

func (p *parser) emptySetOrLeftParen() (empty bool, _ error) {
	tok, err := p.next()
	if err != nil {
		return false, err
	}
	switch {
	case tok.kind == tokLParen:
		return false, nil
	case tok.kind == tokKeyword && tok.str == kwEmpty:
		return true, nil
	default:
		return false, p.unexpected(tok, "'(' or EMPTY")
	}
}

func (p *parser) commaOrRightParen() (more bool, _ error) {
	tok, err := p.next()
	if err != nil {
		return false, err
	}
	switch tok.kind {
	case tokComma:
		return true, nil
	case tokRParen:
		return false, nil
	default:
		return false, p.unexpected(tok, "',' or ')'")
	}
}

func (p *parser) rightParen() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind != tokRParen {
		return p.unexpected(tok, "')'")
	}
	return nil
}

func (p *parser) layoutOrXY() geom.Layout {
	if p.layout == geom.NoLayout {
		return geom.XY
	}
	return p.layout
}

func (p *parser) setLayout(layout geom.Layout, pos int) error {
	switch p.layout {
	case layout:
		return nil
	case geom.NoLayout:
		p.layout = layout
		return nil
	default:
		return p.errorf(CoordinateArity, pos,
			"mixed dimensionality, parsed layout is %s but encountered layout of %s",
			layoutName(p.layout), layoutName(layout))
	}
}

// validateStride checks the number of values in a coordinate against the
// current layout. Without a dimension marker the first coordinate decides
// between XY, XYZ and XYZM.
func (p *parser) validateStride(stride int, pos int) error {
	if p.layout == geom.NoLayout {
		switch stride {
		case 2:
			p.layout = geom.XY
		case 3:
			p.layout = geom.XYZ
		case 4:
			p.layout = geom.XYZM
		default:
			return p.errorf(CoordinateArity, pos, "expecting 2, 3 or 4 coords but got %d coords", stride)
		}
		return nil
	}
	if stride != p.layout.Stride() {
		return p.errorf(CoordinateArity, pos,
			"mixed dimensionality, parsed layout is %s so expecting %d coords but got %d coords",
			layoutName(p.layout), p.layout.Stride(), stride)
	}
	return nil
}

func layoutName(layout geom.Layout) string {
	switch layout {
	case geom.XY:
		return "XY"
	case geom.XYM:
		return "XYM"
	case geom.XYZ:
		return "XYZ"
	case geom.XYZM:
		return "XYZM"
	default:
		return "XY, XYZ, or XYZM"
	}
}
