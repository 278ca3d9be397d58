// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"context"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/mapper-wkt/pkg/settings"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"gopkg.in/yaml.v3"
)

// Mapping is a set of field definitions, as read from a mapping file:
//
//	properties:
//	  location:
//	    type: wkt
//	    tree: quadtree
//	    precision: 1km
type Mapping struct {
	Properties map[string]map[string]interface{} `yaml:"properties"`
}

// ParseMapping decodes a YAML mapping. JSON is valid YAML and is accepted as
// well.
func ParseMapping(data []byte) (*Mapping, error) {
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "invalid mapping")
	}
	if len(m.Properties) == 0 {
		return nil, errors.New("invalid mapping: no properties declared")
	}
	return &m, nil
}

// LoadMapping reads and decodes the mapping file at path.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading mapping %s", path)
	}
	return ParseMapping(data)
}

// Build resolves every field definition and returns the document mapper.
// Unknown options fail the build. Known options a type does not consume,
// such as points_only under the term strategy, are logged and ignored.
// No mapping option can be registered once a mapping has been built.
func (m *Mapping) Build(ctx context.Context, metrics *Metrics) (*DocumentMapper, error) {
	settings.Freeze()
	names := make([]string, 0, len(m.Properties))
	for name := range m.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	mappers := make([]*FieldMapper, 0, len(names))
	for _, name := range names {
		node := m.Properties[name]
		typ, _ := node["type"].(string)
		if typ == "" {
			return nil, errors.Newf("no type specified for field [%s]", name)
		}
		parser, ok := LookupType(typ)
		if !ok {
			return nil, errors.Newf("no handler for type [%s] declared on field [%s]", typ, name)
		}
		ft, residual, err := parser(name, node)
		if err != nil {
			return nil, err
		}
		delete(residual, "type")
		if err := checkResidual(ctx, name, residual); err != nil {
			return nil, err
		}
		fm, err := NewFieldMapper(ft, metrics)
		if err != nil {
			return nil, err
		}
		mappers = append(mappers, fm)
	}
	return NewDocumentMapper(mappers...)
}

func checkResidual(ctx context.Context, field string, residual map[string]interface{}) error {
	keys := make([]string, 0, len(residual))
	for k := range residual {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, _, ok := settings.Lookup(toUnderscoreCase(k)); !ok {
			return errors.Newf("unknown parameter [%s] on field [%s]", k, field)
		}
		log.Warningf(ctx, "parameter [%s] has no effect on field [%s]", k, field)
	}
	return nil
}
