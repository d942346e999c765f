package driven

import (
	"context"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

// PageSink receives the mapped documents of exactly one fetched page.
// It is called synchronously between pages: the batch it writes is
// page-scoped, never spanning pages or repositories.
type PageSink func(ctx context.Context, docs []domain.Document) error

// ResourceFetcher pulls one resource kind for one repository from the
// remote API, streaming each page through the sink and following
// pagination links until exhausted.
//
// It returns the number of elements handed to the sink. A non-nil error
// means at least one endpoint call was abandoned (connectivity, rate
// limiting, malformed payload); a not-found resource is a successful
// empty result, not an error. Sink failures do not abort the fetch.
type ResourceFetcher interface {
	Fetch(ctx context.Context, kind domain.Kind, repo string, sink PageSink) (int, error)
}
