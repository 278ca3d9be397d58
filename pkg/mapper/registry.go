// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"fmt"
	"sort"
	"sync"
)

const (
	// PluginName is the name under which the wkt type is installed.
	PluginName = "mapper-wkt"
	// PluginDescription describes the plugin.
	PluginDescription = "Adds WKT mapping types and indexes them as native geo properties"
	// ContentType is the mapping type name of wkt fields.
	ContentType = "wkt"
)

// TypeParser folds the options of a field definition into a FieldType and
// returns the options it did not consume.
type TypeParser func(name string, node map[string]interface{}) (FieldType, map[string]interface{}, error)

var typeParsers struct {
	mu      sync.RWMutex
	parsers map[string]TypeParser
}

// RegisterType installs the parser of a mapping type. Registering a type
// twice panics.
func RegisterType(name string, parser TypeParser) {
	typeParsers.mu.Lock()
	defer typeParsers.mu.Unlock()
	if typeParsers.parsers == nil {
		typeParsers.parsers = make(map[string]TypeParser)
	}
	if _, ok := typeParsers.parsers[name]; ok {
		panic(fmt.Sprintf("mapping type already registered: %s", name))
	}
	typeParsers.parsers[name] = parser
}

// LookupType returns the parser of a mapping type.
func LookupType(name string) (TypeParser, bool) {
	typeParsers.mu.RLock()
	defer typeParsers.mu.RUnlock()
	p, ok := typeParsers.parsers[name]
	return p, ok
}

// RegisteredTypes returns the sorted names of the registered types.
func RegisteredTypes() []string {
	typeParsers.mu.RLock()
	defer typeParsers.mu.RUnlock()
	names := make([]string, 0, len(typeParsers.parsers))
	for name := range typeParsers.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterType(ContentType, ParseFieldType)
}
