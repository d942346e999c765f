package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ghsync/internal/core/domain"
	"github.com/custodia-labs/ghsync/internal/core/ports/driven"
)

// BulkWriter flushes one fetched page at a time as a single batch write
// against the document store. The batch's lifetime is scoped to one
// page: WritePage is called synchronously between page requests, so a
// batch never spans pages or repositories.
//
// Counters are plain ints: the synchroniser runs on a single worker.
type BulkWriter struct {
	store driven.DocumentStore
	index string

	written  int
	failures int
}

// NewBulkWriter creates a writer targeting one index.
func NewBulkWriter(store driven.DocumentStore, index string) *BulkWriter {
	return &BulkWriter{store: store, index: index}
}

// WritePage submits one page's documents as a single batch. Failures are
// counted and returned for logging, never escalated: the store's
// create-only handling already tolerates in-cycle duplicates, and a lost
// page is refetched next cycle.
func (w *BulkWriter) WritePage(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	if err := w.store.BulkWrite(ctx, w.index, docs); err != nil {
		w.failures++
		return fmt.Errorf("bulk write %d documents: %w", len(docs), err)
	}
	w.written += len(docs)
	return nil
}

// Written returns the number of documents flushed so far.
func (w *BulkWriter) Written() int {
	return w.written
}

// Failures returns the number of failed page batches so far.
func (w *BulkWriter) Failures() int {
	return w.failures
}
