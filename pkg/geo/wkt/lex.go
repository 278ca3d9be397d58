// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package wkt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/twpayne/go-geom"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokComma
	tokNum
	tokKeyword
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokNum:
		return "number"
	case tokKeyword:
		return "keyword"
	default:
		panic(fmt.Sprintf("unknown token kind %d", int(k)))
	}
}

// token is a single lexed token. For keywords str is upper-cased.
type token struct {
	kind tokenKind
	pos  int
	str  string
	num  float64
}

func (t token) describe() string {
	switch t.kind {
	case tokNum, tokKeyword:
		return fmt.Sprintf("%s %q", t.kind, t.str)
	default:
		return t.kind.String()
	}
}

// Geometry type keywords, without dimension suffixes.
const (
	kwPoint              = "POINT"
	kwLineString         = "LINESTRING"
	kwPolygon            = "POLYGON"
	kwMultiPoint         = "MULTIPOINT"
	kwMultiLineString    = "MULTILINESTRING"
	kwMultiPolygon       = "MULTIPOLYGON"
	kwGeometryCollection = "GEOMETRYCOLLECTION"
	kwEmpty              = "EMPTY"
)

var geometryKeywords = map[string]struct{}{
	kwPoint:              {},
	kwLineString:         {},
	kwPolygon:            {},
	kwMultiPoint:         {},
	kwMultiLineString:    {},
	kwMultiPolygon:       {},
	kwGeometryCollection: {},
}

// dimensionKeyword maps a dimension marker to its layout.
func dimensionKeyword(s string) (geom.Layout, bool) {
	switch s {
	case "Z":
		return geom.XYZ, true
	case "M":
		return geom.XYM, true
	case "ZM":
		return geom.XYZM, true
	default:
		return geom.NoLayout, false
	}
}

// geometryKeyword splits a geometry keyword with an optional attached
// dimension suffix, e.g. POINTZM, into its type and layout.
func geometryKeyword(s string) (string, geom.Layout, bool) {
	if _, ok := geometryKeywords[s]; ok {
		return s, geom.NoLayout, true
	}
	for _, suffix := range []string{"ZM", "Z", "M"} {
		base := strings.TrimSuffix(s, suffix)
		if base == s {
			continue
		}
		if _, ok := geometryKeywords[base]; ok {
			layout, _ := dimensionKeyword(suffix)
			return base, layout, true
		}
	}
	return "", geom.NoLayout, false
}

func isKnownKeyword(s string) bool {
	if s == kwEmpty {
		return true
	}
	if _, ok := dimensionKeyword(s); ok {
		return true
	}
	_, _, ok := geometryKeyword(s)
	return ok
}

type wktLex struct {
	line    string
	pos     int
	lastPos int
}

func makeWktLex(line string) wktLex {
	return wktLex{line: line}
}

// lex lexes a token from the input.
func (l *wktLex) lex() (token, error) {
	// Skip leading spaces.
	l.trimLeft()
	l.lastPos = l.pos

	switch c := l.peek(); {
	case c == utf8.RuneError && l.pos == len(l.line):
		return token{kind: tokEOF, pos: l.pos}, nil
	case c == '(':
		l.next()
		return token{kind: tokLParen, pos: l.lastPos}, nil
	case c == ')':
		l.next()
		return token{kind: tokRParen, pos: l.lastPos}, nil
	case c == ',':
		l.next()
		return token{kind: tokComma, pos: l.lastPos}, nil
	case unicode.IsLetter(c):
		return l.keyword()
	case isNumStartRune(c):
		return l.num()
	default:
		l.next()
		return token{}, l.lexError(UnexpectedToken, fmt.Sprintf("invalid character %q", c))
	}
}

// keyword lexes a string keyword. Only ASCII letters form keywords; a word
// with any other letter is reported whole as an unknown keyword.
func (l *wktLex) keyword() (token, error) {
	start := l.pos
	ascii := true
	for unicode.IsLetter(l.peek()) {
		if c := l.next(); c >= utf8.RuneSelf {
			ascii = false
		}
	}
	word := l.line[start:l.pos]
	if !ascii {
		return token{}, l.lexError(UnknownKeyword, fmt.Sprintf("invalid keyword %q", word))
	}
	str := strings.ToUpper(word)
	if _, ok := nonFiniteWords[str]; ok {
		return token{}, l.lexError(MalformedNumber, fmt.Sprintf("invalid number %q", word))
	}
	if !isKnownKeyword(str) {
		return token{}, l.lexError(UnknownKeyword, fmt.Sprintf("invalid keyword %q", str))
	}
	return token{kind: tokKeyword, pos: l.lastPos, str: str}, nil
}

// nonFiniteWords are the spellings strconv accepts for NaN and infinities.
var nonFiniteWords = map[string]struct{}{
	"NAN":      {},
	"INF":      {},
	"INFINITY": {},
}

func isNumStartRune(r rune) bool {
	switch r {
	case '-', '+', '.':
		return true
	default:
		return r >= '0' && r <= '9'
	}
}

func isNumRune(r rune) bool {
	switch r {
	case 'e', 'E':
		return true
	default:
		return isNumStartRune(r)
	}
}

// isDelimiter reports whether r ends a numeric literal.
func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == ',' || unicode.IsSpace(r)
}

// num lexes a number. Everything up to the next delimiter belongs to the
// literal, so trailing garbage such as "13.4x" is reported as a malformed
// number rather than as a separate keyword.
func (l *wktLex) num() (token, error) {
	start := l.pos
	valid := true
	for l.pos < len(l.line) {
		c := l.peek()
		if isDelimiter(c) {
			break
		}
		if !isNumRune(c) {
			valid = false
		}
		l.next()
	}
	str := l.line[start:l.pos]
	if !valid {
		return token{}, l.lexError(MalformedNumber, fmt.Sprintf("invalid number %q", str))
	}
	fl, err := strconv.ParseFloat(str, 64)
	// ParseFloat reports out of range values with a valid ±Inf result, which
	// the WKT grammar does not allow either.
	if err != nil || math.IsInf(fl, 0) || math.IsNaN(fl) {
		return token{}, l.lexError(MalformedNumber, fmt.Sprintf("invalid number %q", str))
	}
	return token{kind: tokNum, pos: l.lastPos, str: str, num: fl}, nil
}

func (l *wktLex) peek() rune {
	if l.pos >= len(l.line) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.line[l.pos:])
	return r
}

func (l *wktLex) next() rune {
	if l.pos >= len(l.line) {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRuneInString(l.line[l.pos:])
	l.pos += size
	return r
}

func (l *wktLex) trimLeft() {
	for l.pos < len(l.line) && unicode.IsSpace(l.peek()) {
		l.next()
	}
}

func (l *wktLex) lexError(kind ErrorKind, problem string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Pos:     l.lastPos,
		Input:   l.line,
		Message: "lex error: " + problem,
	}
}
