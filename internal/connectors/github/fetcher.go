package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/ghsync/internal/core/domain"
	"github.com/custodia-labs/ghsync/internal/core/ports/driven"
	"github.com/custodia-labs/ghsync/internal/logger"
)

// DefaultFailurePause is the short fixed pause after a transient fetch
// failure, so an already struggling remote is not hammered immediately.
const DefaultFailurePause = time.Second

// FetcherConfig carries the fixed parameters of a Fetcher.
type FetcherConfig struct {
	// Owner is substituted into every endpoint template.
	Owner string

	// BaseURL overrides the API root. Empty means production.
	BaseURL string

	// PageSize is the per_page parameter. Zero omits it.
	PageSize int

	// FailurePause overrides the pause after a transient failure.
	FailurePause time.Duration
}

// Ensure Fetcher implements the interface.
var _ driven.ResourceFetcher = (*Fetcher)(nil)

// Fetcher pulls resource listings page by page. Each page is mapped and
// handed to the sink before the next page is requested; the pacer spaces
// endpoint calls, never pages within one call.
type Fetcher struct {
	client       *Client
	pacer        *Pacer
	owner        string
	baseURL      string
	pageSize     int
	failurePause time.Duration
}

// NewFetcher creates a fetcher for one owner.
func NewFetcher(client *Client, pacer *Pacer, cfg FetcherConfig) *Fetcher {
	base := cfg.BaseURL
	if base == "" {
		base = APIRoot
	}
	pause := cfg.FailurePause
	if pause <= 0 {
		pause = DefaultFailurePause
	}
	return &Fetcher{
		client:       client,
		pacer:        pacer,
		owner:        cfg.Owner,
		baseURL:      base,
		pageSize:     cfg.PageSize,
		failurePause: pause,
	}
}

// Fetch pulls every listing endpoint of the kind for one repository.
// Endpoint calls are independent: an abandoned one does not stop the
// others, and all abandonments are joined into the returned error.
func (f *Fetcher) Fetch(ctx context.Context, kind domain.Kind, repo string, sink driven.PageSink) (int, error) {
	templates, ok := endpointTemplates[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	var total int
	var errs []error
	for _, template := range templates {
		if err := f.pacer.Wait(ctx); err != nil {
			errs = append(errs, err)
			break
		}
		url := endpointURL(f.baseURL, template, f.owner, repo, f.pageSize)
		n, err := f.fetchChain(ctx, kind, repo, url, sink)
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// fetchChain follows one pagination link chain to exhaustion. Any
// transient failure abandons the remainder of the chain; the next
// scheduled cycle retries from the first page.
func (f *Fetcher) fetchChain(ctx context.Context, kind domain.Kind, repo, url string, sink driven.PageSink) (int, error) {
	total := 0
	for url != "" {
		n, next, err := f.fetchPage(ctx, kind, repo, url, sink)
		total += n
		if err != nil {
			logger.Warn("github: %s %s/%s: %v", kind, f.owner, repo, err)
			f.pause(ctx)
			return total, fmt.Errorf("fetch %s %s/%s: %w", kind, f.owner, repo, err)
		}
		url = next
	}
	return total, nil
}

// fetchPage requests one page, maps its elements and flushes them
// through the sink. It returns the next page URL, if any.
func (f *Fetcher) fetchPage(ctx context.Context, kind domain.Kind, repo, url string, sink driven.PageSink) (int, string, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	f.pacer.Observe(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// The resource genuinely does not exist for this repository.
		logger.Debug("github: %s %s/%s: not found", kind, f.owner, repo)
		return 0, "", nil
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && f.pacer.Exhausted():
		return 0, "", f.pacer.limitError()
	case resp.StatusCode != http.StatusOK:
		return 0, "", &APIError{StatusCode: resp.StatusCode, URL: url}
	}

	var elements []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&elements); err != nil {
		return 0, "", fmt.Errorf("decode page: %w", err)
	}

	docs := make([]domain.Document, 0, len(elements))
	for _, el := range elements {
		doc, err := domain.MapElement(kind, repo, el)
		if err != nil {
			logger.Warn("github: skip %s element: %v", kind, err)
			continue
		}
		docs = append(docs, doc)
	}

	// A failed page write is counted by the sink's owner; later pages
	// are still worth fetching.
	if err := sink(ctx, docs); err != nil {
		logger.Warn("github: write %s page for %s/%s: %v", kind, f.owner, repo, err)
	}

	next, _ := NextPageURL(resp.Header.Get("Link"))
	return len(docs), next, nil
}

// pause sleeps the fixed post-failure interval. An interrupted pause
// counts as a completed one.
func (f *Fetcher) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(f.failurePause):
	}
}
