// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package mapper

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/mapper-wkt/pkg/geo/geoindex"
	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/cockroachdb/redact"
)

// ParsedDocument holds the fields produced for one document.
type ParsedDocument struct {
	ID     string
	Fields []geoindex.Field
}

// DocumentMapper runs the field mappers of a mapping over documents. It is
// immutable and safe for concurrent use.
type DocumentMapper struct {
	// mappers is sorted by field name.
	mappers []*FieldMapper
}

// NewDocumentMapper returns a document mapper over the given fields.
func NewDocumentMapper(mappers ...*FieldMapper) (*DocumentMapper, error) {
	sorted := append([]*FieldMapper(nil), mappers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Name() == sorted[i-1].Name() {
			return nil, errors.Newf("field [%s] is mapped twice", sorted[i].Name())
		}
	}
	return &DocumentMapper{mappers: sorted}, nil
}

// FieldMappers returns the field mappers sorted by name.
func (d *DocumentMapper) FieldMappers() []*FieldMapper {
	return d.mappers
}

// FieldMapper returns the mapper of the named field.
func (d *DocumentMapper) FieldMapper(name string) (*FieldMapper, bool) {
	i := sort.Search(len(d.mappers), func(i int) bool { return d.mappers[i].Name() >= name })
	if i < len(d.mappers) && d.mappers[i].Name() == name {
		return d.mappers[i], true
	}
	return nil, false
}

// Process runs every mapped field of doc. A field name with dots addresses
// nested objects. Missing fields are absent; unmapped properties are
// ignored. The first failing field rejects the whole document.
func (d *DocumentMapper) Process(
	ctx context.Context, id string, doc map[string]interface{},
) (*ParsedDocument, error) {
	ctx = logtags.AddTag(ctx, "doc", id)
	parsed := &ParsedDocument{ID: id}
	for _, m := range d.mappers {
		fields, err := m.Parse(ctx, lookupPath(doc, m.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "document [%s] rejected", redact.Safe(id))
		}
		parsed.Fields = append(parsed.Fields, fields...)
	}
	log.VEventf(ctx, 2, "processed into %d fields", len(parsed.Fields))
	return parsed, nil
}

// lookupPath returns the value at a dotted path, or nil.
func lookupPath(doc map[string]interface{}, path string) interface{} {
	if v, ok := doc[path]; ok {
		return v
	}
	head, rest, ok := strings.Cut(path, ".")
	if !ok {
		return nil
	}
	nested, ok := doc[head].(map[string]interface{})
	if !ok {
		return nil
	}
	return lookupPath(nested, rest)
}

// Indexer processes documents and writes their fields to a store.
type Indexer struct {
	mapper *DocumentMapper
	store  *geoindex.Store
}

// NewIndexer returns an indexer writing to store.
func NewIndexer(mapper *DocumentMapper, store *geoindex.Store) *Indexer {
	return &Indexer{mapper: mapper, store: store}
}

// Index processes doc and replaces whatever the store held for id. A
// rejected document leaves the store untouched.
func (ix *Indexer) Index(
	ctx context.Context, id string, doc map[string]interface{},
) (*ParsedDocument, error) {
	parsed, err := ix.mapper.Process(ctx, id, doc)
	if err != nil {
		return nil, err
	}
	ix.store.Add(ctx, id, parsed.Fields)
	return parsed, nil
}

// Store returns the store written by the indexer.
func (ix *Indexer) Store() *geoindex.Store {
	return ix.store
}
