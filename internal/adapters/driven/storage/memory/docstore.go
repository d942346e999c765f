// Package memory provides an in-memory document store, used by tests and
// dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/ghsync/internal/core/domain"
	"github.com/custodia-labs/ghsync/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// docKey addresses one document within an index.
type docKey struct {
	kind domain.Kind
	id   string
}

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	indexes   map[string]domain.IndexSettings
	documents map[string]map[docKey]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		indexes:   make(map[string]domain.IndexSettings),
		documents: make(map[string]map[docKey]domain.Document),
	}
}

// CreateIndex provisions an index. Creating it twice keeps the original
// settings, mirroring the already-exists tolerance of real stores.
func (s *DocumentStore) CreateIndex(_ context.Context, name string, settings domain.IndexSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indexes[name]; ok {
		return nil
	}
	s.indexes[name] = settings
	s.documents[name] = make(map[docKey]domain.Document)
	return nil
}

// BulkWrite stores a batch, honouring each document's overwrite flag.
// Create-only collisions are dropped silently.
func (s *DocumentStore) BulkWrite(_ context.Context, index string, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byKey := s.ensureIndex(index)
	for _, doc := range docs {
		key := docKey{kind: doc.Kind, id: doc.ID}
		if _, exists := byKey[key]; exists && !doc.Overwrite {
			continue
		}
		byKey[key] = doc
	}
	return nil
}

// DeleteByKind removes every document of one kind.
func (s *DocumentStore) DeleteByKind(_ context.Context, index string, kind domain.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.documents[index] {
		if key.kind == kind {
			delete(s.documents[index], key)
		}
	}
	return nil
}

// Get retrieves one document, or domain.ErrNotFound.
func (s *DocumentStore) Get(_ context.Context, index string, kind domain.Kind, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[index][docKey{kind: kind, id: id}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Stats returns the stored document count per kind.
func (s *DocumentStore) Stats(_ context.Context, index string) (map[domain.Kind]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make(map[domain.Kind]int)
	for key := range s.documents[index] {
		stats[key.kind]++
	}
	return stats, nil
}

// Close releases nothing; it exists to satisfy the port.
func (s *DocumentStore) Close() error {
	return nil
}

// Count returns how many documents of one kind are stored. Test helper.
func (s *DocumentStore) Count(index string, kind domain.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for key := range s.documents[index] {
		if key.kind == kind {
			n++
		}
	}
	return n
}

// ensureIndex lazily creates the per-index map so writes to an index
// that skipped CreateIndex still land somewhere sensible.
func (s *DocumentStore) ensureIndex(index string) map[docKey]domain.Document {
	byKey, ok := s.documents[index]
	if !ok {
		byKey = make(map[docKey]domain.Document)
		s.documents[index] = byKey
	}
	return byKey
}
