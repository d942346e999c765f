package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ghsync/internal/core/domain"
	"github.com/custodia-labs/ghsync/internal/core/ports/driven"
	"github.com/custodia-labs/ghsync/internal/core/ports/driving"
	"github.com/custodia-labs/ghsync/internal/logger"
)

// Ensure Syncer implements the interface.
var _ driving.SyncRunner = (*Syncer)(nil)

// Syncer runs one full synchronisation cycle: purge the volatile kinds,
// then refetch every resource kind for every configured repository,
// strictly sequentially. Throughput is deliberately traded for
// politeness towards the remote rate limits.
type Syncer struct {
	cfg     domain.SyncConfig
	store   driven.DocumentStore
	fetcher driven.ResourceFetcher
}

// NewSyncer creates a syncer with its immutable configuration.
func NewSyncer(cfg domain.SyncConfig, store driven.DocumentStore, fetcher driven.ResourceFetcher) *Syncer {
	return &Syncer{cfg: cfg, store: store, fetcher: fetcher}
}

// RunCycle executes one cycle and reports what happened. No single
// failure aborts the cycle: purge, fetch and write failures are counted
// per call and the remaining kinds and repositories still run.
func (s *Syncer) RunCycle(ctx context.Context) domain.CycleReport {
	report := domain.CycleReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
	index := s.cfg.IndexName()

	// The listing endpoints for volatile kinds reflect only current
	// remote state, with no deletion feed. Wiping and reinserting each
	// cycle is the only way a remote deletion becomes visible locally.
	for _, kind := range domain.VolatileKinds() {
		if err := s.store.DeleteByKind(ctx, index, kind); err != nil {
			logger.Warn("purge %s: %v", kind, err)
			report.PurgeFailures++
		}
	}

	writer := NewBulkWriter(s.store, index)
	for _, repo := range s.cfg.Repositories {
		for _, kind := range domain.AllKinds() {
			n, err := s.fetcher.Fetch(ctx, kind, repo, writer.WritePage)
			if err != nil {
				logger.Warn("fetch %s for %s/%s: %v", kind, s.cfg.Owner, repo, err)
				report.FetchFailures++
			}
			logger.Debug("fetched %d %s elements for %s/%s", n, kind, s.cfg.Owner, repo)
		}
	}

	report.Documents = writer.Written()
	report.WriteFailures = writer.Failures()
	report.EndedAt = time.Now()
	return report
}
