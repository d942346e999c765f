package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/ghsync/internal/core/domain"
	"github.com/custodia-labs/ghsync/internal/core/ports/driven"
	"github.com/custodia-labs/ghsync/internal/core/ports/driving"
	"github.com/custodia-labs/ghsync/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler owns the single background worker that repeats full resync
// cycles at a fixed interval. Stop is cooperative and coarse-grained: it
// is observed between cycles, so a cycle, once begun, runs to
// completion.
type Scheduler struct {
	cfg    domain.SyncConfig
	store  driven.DocumentStore
	runner driving.SyncRunner

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler around one sync runner.
func NewScheduler(cfg domain.SyncConfig, store driven.DocumentStore, runner driving.SyncRunner) *Scheduler {
	return &Scheduler{cfg: cfg, store: store, runner: runner}
}

// Start provisions the index and launches the worker. It returns
// immediately; domain.ErrAlreadyRunning if the worker is already up.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return domain.ErrAlreadyRunning
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	// Provision up front; an index that already exists is fine, and any
	// other provisioning failure is left for the first writes to surface.
	if err := s.store.CreateIndex(ctx, s.cfg.IndexName(), domain.DefaultIndexSettings()); err != nil {
		logger.Error("create index %s: %v", s.cfg.IndexName(), err)
	}

	s.wg.Add(1)
	go s.run(ctx)
	return nil
}

// Stop signals the worker to end after its current cycle and waits for
// it. Idempotent.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// run is the worker loop: cycle, then sleep the configured interval. The
// stop signal interrupts the sleep, never the cycle.
func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	interval := s.cfg.Interval
	if interval <= 0 {
		interval = domain.DefaultInterval
	}

	for {
		report := s.runner.RunCycle(ctx)
		logger.Info("cycle %s: %d documents, %d fetch / %d write / %d purge failures in %s",
			report.ID, report.Documents,
			report.FetchFailures, report.WriteFailures, report.PurgeFailures,
			report.Duration().Round(time.Millisecond))

		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}
