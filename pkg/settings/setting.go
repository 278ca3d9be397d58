// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Setting is a registered mapping option.
type Setting interface {
	// Key returns the option name.
	Key() string
	// Typ returns the short type name, e.g. "b" for booleans.
	Typ() string
	// DefaultString renders the default value.
	DefaultString() string
	// Validate checks that raw, a value decoded from a mapping, is
	// acceptable for the option.
	Validate(raw interface{}) error
}

type common struct {
	key string
}

func (c common) Key() string { return c.key }

func (c common) invalid(raw interface{}, expected string) error {
	return errors.Newf("[%s] expected %s but got %T [%v]", c.key, expected, raw, raw)
}

// BoolSetting is a boolean option. Strings "true" and "false" are accepted
// as well.
type BoolSetting struct {
	common
	defaultValue bool
}

var _ Setting = (*BoolSetting)(nil)

// Typ is part of the Setting interface.
func (*BoolSetting) Typ() string { return "b" }

// DefaultString is part of the Setting interface.
func (b *BoolSetting) DefaultString() string { return strconv.FormatBool(b.defaultValue) }

// Default returns the default value.
func (b *BoolSetting) Default() bool { return b.defaultValue }

// Validate is part of the Setting interface.
func (b *BoolSetting) Validate(raw interface{}) error {
	_, err := b.Parse(raw)
	return err
}

// Parse returns raw as a bool.
func (b *BoolSetting) Parse(raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, b.invalid(raw, "a boolean")
}

// RegisterBoolSetting defines a new boolean option.
func RegisterBoolSetting(key, desc string, defaultValue bool) *BoolSetting {
	s := &BoolSetting{common: common{key: key}, defaultValue: defaultValue}
	register(key, desc, s)
	return s
}

// IntSetting is an integer option bounded to [min, max].
type IntSetting struct {
	common
	defaultValue int64
	min, max     int64
}

var _ Setting = (*IntSetting)(nil)

// Typ is part of the Setting interface.
func (*IntSetting) Typ() string { return "i" }

// DefaultString is part of the Setting interface.
func (i *IntSetting) DefaultString() string { return strconv.FormatInt(i.defaultValue, 10) }

// Default returns the default value.
func (i *IntSetting) Default() int64 { return i.defaultValue }

// Validate is part of the Setting interface.
func (i *IntSetting) Validate(raw interface{}) error {
	_, err := i.Parse(raw)
	return err
}

// Parse returns raw as an int64. Whole floats and numeric strings are
// accepted.
func (i *IntSetting) Parse(raw interface{}) (int64, error) {
	var v int64
	switch r := raw.(type) {
	case int:
		v = int64(r)
	case int64:
		v = r
	case float64:
		if r != math.Trunc(r) {
			return 0, i.invalid(raw, "an integer")
		}
		v = int64(r)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil {
			return 0, i.invalid(raw, "an integer")
		}
		v = parsed
	default:
		return 0, i.invalid(raw, "an integer")
	}
	if v < i.min || v > i.max {
		return 0, errors.Newf("[%s] must be between %d and %d, got %d", i.key, i.min, i.max, v)
	}
	return v, nil
}

// RegisterIntSetting defines a new integer option with inclusive bounds.
func RegisterIntSetting(key, desc string, defaultValue, min, max int64) *IntSetting {
	s := &IntSetting{common: common{key: key}, defaultValue: defaultValue, min: min, max: max}
	register(key, desc, s)
	return s
}

// FloatSetting is a floating point option bounded to [min, max].
type FloatSetting struct {
	common
	defaultValue float64
	min, max     float64
}

var _ Setting = (*FloatSetting)(nil)

// Typ is part of the Setting interface.
func (*FloatSetting) Typ() string { return "f" }

// DefaultString is part of the Setting interface.
func (f *FloatSetting) DefaultString() string {
	return strconv.FormatFloat(f.defaultValue, 'g', -1, 64)
}

// Default returns the default value.
func (f *FloatSetting) Default() float64 { return f.defaultValue }

// Validate is part of the Setting interface.
func (f *FloatSetting) Validate(raw interface{}) error {
	_, err := f.Parse(raw)
	return err
}

// Parse returns raw as a float64. Numeric strings are accepted.
func (f *FloatSetting) Parse(raw interface{}) (float64, error) {
	var v float64
	switch r := raw.(type) {
	case float64:
		v = r
	case int:
		v = float64(r)
	case int64:
		v = float64(r)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return 0, f.invalid(raw, "a number")
		}
		v = parsed
	default:
		return 0, f.invalid(raw, "a number")
	}
	if math.IsNaN(v) || v < f.min || v > f.max {
		return 0, errors.Newf("[%s] must be between %g and %g, got %g", f.key, f.min, f.max, v)
	}
	return v, nil
}

// RegisterFloatSetting defines a new floating point option with inclusive
// bounds.
func RegisterFloatSetting(key, desc string, defaultValue, min, max float64) *FloatSetting {
	s := &FloatSetting{common: common{key: key}, defaultValue: defaultValue, min: min, max: max}
	register(key, desc, s)
	return s
}

// StringSetting is a string option. A setting with a non-empty list of
// values only accepts those, compared case-insensitively.
type StringSetting struct {
	common
	defaultValue string
	values       []string
}

var _ Setting = (*StringSetting)(nil)

// Typ is part of the Setting interface.
func (s *StringSetting) Typ() string {
	if len(s.values) > 0 {
		return "e"
	}
	return "s"
}

// DefaultString is part of the Setting interface.
func (s *StringSetting) DefaultString() string { return s.defaultValue }

// Default returns the default value.
func (s *StringSetting) Default() string { return s.defaultValue }

// Values returns the accepted values, if restricted.
func (s *StringSetting) Values() []string { return s.values }

// Validate is part of the Setting interface.
func (s *StringSetting) Validate(raw interface{}) error {
	_, err := s.Parse(raw)
	return err
}

// Parse returns raw as a string. Numbers are rendered as strings, so that
// e.g. a bare precision of 50 reads as "50".
func (s *StringSetting) Parse(raw interface{}) (string, error) {
	var v string
	switch r := raw.(type) {
	case string:
		v = r
	case int, int64, float64:
		v = fmt.Sprint(r)
	default:
		return "", s.invalid(raw, "a string")
	}
	if len(s.values) == 0 {
		return v, nil
	}
	for _, allowed := range s.values {
		if strings.EqualFold(v, allowed) {
			return allowed, nil
		}
	}
	return "", errors.Newf("[%s] must be one of [%s], got [%s]",
		s.key, strings.Join(s.values, ", "), v)
}

// RegisterStringSetting defines a new string option. If values are given,
// only they are accepted.
func RegisterStringSetting(key, desc, defaultValue string, values ...string) *StringSetting {
	s := &StringSetting{common: common{key: key}, defaultValue: defaultValue, values: values}
	register(key, desc, s)
	return s
}
