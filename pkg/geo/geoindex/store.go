// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package geoindex

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/mapper-wkt/pkg/util/log"
	"github.com/google/btree"
)

type indexEntry struct {
	field string
	term  string
	doc   string
}

func (e indexEntry) Less(than btree.Item) bool {
	o := than.(indexEntry)
	if e.field != o.field {
		return e.field < o.field
	}
	if e.term != o.term {
		return e.term < o.term
	}
	return e.doc < o.doc
}

type storedDoc struct {
	entries []indexEntry
	shapes  map[string][][]byte
}

// Store is an in-memory inverted index of the fields written for each
// document. Term and point fields are indexed by their IndexTerm; shape
// fields are kept per document. Store is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	bt   *btree.BTree
	docs map[string]*storedDoc
}

// StoreStats summarizes the contents of a Store.
type StoreStats struct {
	Docs    int
	Terms   int
	Entries int
	Shapes  int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{bt: btree.New(8), docs: make(map[string]*storedDoc)}
}

// Add writes the fields of a document, replacing whatever was previously
// written for docID.
func (s *Store) Add(ctx context.Context, docID string, fields []Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(docID)

	doc := &storedDoc{}
	for _, f := range fields {
		if f.Kind == FieldKindShape {
			if doc.shapes == nil {
				doc.shapes = make(map[string][][]byte)
			}
			doc.shapes[f.Name] = append(doc.shapes[f.Name], f.Blob)
			continue
		}
		e := indexEntry{field: f.Name, term: f.IndexTerm(), doc: docID}
		// The same term can be produced twice for one document, e.g. by two
		// equal points of a MultiPoint.
		if existing := s.bt.ReplaceOrInsert(e); existing == nil {
			doc.entries = append(doc.entries, e)
		}
	}
	s.docs[docID] = doc
	log.VEventf(ctx, 2, "stored %d entries for document %s", len(doc.entries), docID)
}

// Delete removes everything written for docID. It returns whether the
// document was present.
func (s *Store) Delete(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(docID)
}

func (s *Store) deleteLocked(docID string) bool {
	doc, ok := s.docs[docID]
	if !ok {
		return false
	}
	for _, e := range doc.entries {
		s.bt.Delete(e)
	}
	delete(s.docs, docID)
	return true
}

// DocsForTerm returns the sorted ids of the documents with the term in the
// field.
func (s *Store) DocsForTerm(field, term string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []string
	s.bt.AscendGreaterOrEqual(indexEntry{field: field, term: term}, func(i btree.Item) bool {
		e := i.(indexEntry)
		if e.field != field || e.term != term {
			return false
		}
		docs = append(docs, e.doc)
		return true
	})
	return docs
}

// TermsForField returns the distinct sorted terms written for the field.
func (s *Store) TermsForField(field string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var terms []string
	s.bt.AscendGreaterOrEqual(indexEntry{field: field}, func(i btree.Item) bool {
		e := i.(indexEntry)
		if e.field != field {
			return false
		}
		if len(terms) == 0 || terms[len(terms)-1] != e.term {
			terms = append(terms, e.term)
		}
		return true
	})
	return terms
}

// Shapes returns the WKB shapes written for the document's field.
func (s *Store) Shapes(docID, field string) [][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.docs[docID]; ok {
		return doc.shapes[field]
	}
	return nil
}

// NumTerms returns the number of distinct (field, term) pairs.
func (s *Store) NumTerms() int {
	return s.Stats().Terms
}

// Stats returns a summary of the store.
func (s *Store) Stats() StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := StoreStats{Docs: len(s.docs), Entries: s.bt.Len()}
	var prev indexEntry
	first := true
	s.bt.Ascend(func(i btree.Item) bool {
		e := i.(indexEntry)
		if first || e.field != prev.field || e.term != prev.term {
			stats.Terms++
		}
		prev, first = e, false
		return true
	})
	for _, doc := range s.docs {
		for _, shapes := range doc.shapes {
			stats.Shapes += len(shapes)
		}
	}
	return stats
}

// DocIDs returns the sorted ids of all stored documents.
func (s *Store) DocIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
