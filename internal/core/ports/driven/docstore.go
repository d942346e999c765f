package driven

import (
	"context"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

// DocumentStore persists synchronised documents. The synchroniser is the
// sole writer; the store's own per-document atomicity is relied upon for
// anything reading alongside it.
type DocumentStore interface {
	// CreateIndex provisions an index with its analysis settings.
	// An index that already exists is not an error.
	CreateIndex(ctx context.Context, name string, settings domain.IndexSettings) error

	// BulkWrite stores one batch of documents. Each document's Overwrite
	// flag decides between replace-in-place and create-only; a create-only
	// collision drops the document without failing the batch.
	BulkWrite(ctx context.Context, index string, docs []domain.Document) error

	// DeleteByKind removes every document of the given kind from the index.
	DeleteByKind(ctx context.Context, index string, kind domain.Kind) error

	// Get retrieves one document, or domain.ErrNotFound.
	Get(ctx context.Context, index string, kind domain.Kind, id string) (*domain.Document, error)

	// Stats returns the stored document count per kind.
	Stats(ctx context.Context, index string) (map[domain.Kind]int, error)

	// Close releases resources.
	Close() error
}
