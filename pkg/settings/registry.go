// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package settings is the registry of mapping options recognized by the
// field types of this module. Each option has a name, a description, a
// type and a default.
package settings

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// registry contains all defined options, their types and default values.
//
// Registry should never be mutated after init (except in tests), as it is read
// concurrently by different callers.
var registry = map[string]wrappedSetting{}

// frozen becomes non-zero once the registry is "live".
var frozen int32

// Freeze ensures that no new options can be defined once mappings are being
// parsed.
func Freeze() { atomic.StoreInt32(&frozen, 1) }

func assertNotFrozen(key string) {
	if atomic.LoadInt32(&frozen) > 0 {
		panic(fmt.Sprintf("registration must occur before mappings are parsed: %s", key))
	}
}

// register adds an option to the registry.
func register(key, desc string, s Setting) {
	assertNotFrozen(key)
	if _, ok := registry[key]; ok {
		panic(fmt.Sprintf("setting already defined: %s", key))
	}
	registry[key] = wrappedSetting{description: desc, setting: s}
}

type wrappedSetting struct {
	description string
	setting     Setting
}

// Keys returns a sorted string array with all the known keys.
func Keys() (res []string) {
	res = make([]string, 0, len(registry))
	for k := range registry {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Lookup returns a Setting by name along with its description.
func Lookup(name string) (Setting, string, bool) {
	v, ok := registry[name]
	if !ok {
		return nil, "", false
	}
	return v.setting, v.description, true
}

// TestingSaveRegistry can be used in tests to save/restore the current
// contents of the registry.
func TestingSaveRegistry() func() {
	var origRegistry = make(map[string]wrappedSetting)
	for k, v := range registry {
		origRegistry[k] = v
	}
	origFrozen := atomic.LoadInt32(&frozen)
	return func() {
		registry = origRegistry
		atomic.StoreInt32(&frozen, origFrozen)
	}
}
