package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghsync/internal/core/domain"
)

// countingRunner records cycle runs and can hold a cycle open.
type countingRunner struct {
	mu     sync.Mutex
	cycles int
	block  chan struct{}
}

func (r *countingRunner) RunCycle(context.Context) domain.CycleReport {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles++
	return domain.CycleReport{ID: "test-cycle"}
}

func (r *countingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles
}

func TestSchedulerRunsCyclesAtInterval(t *testing.T) {
	cfg := testConfig("widgets")
	cfg.Interval = 5 * time.Millisecond
	runner := &countingRunner{}
	scheduler := NewScheduler(cfg, memory.NewDocumentStore(), runner)

	require.NoError(t, scheduler.Start(context.Background()))
	assert.Eventually(t, func() bool { return runner.count() >= 2 },
		time.Second, time.Millisecond)
	require.NoError(t, scheduler.Stop())
}

// indexSpyStore records index provisioning calls.
type indexSpyStore struct {
	*memory.DocumentStore

	mu       sync.Mutex
	created  []string
	settings domain.IndexSettings
}

func (s *indexSpyStore) CreateIndex(ctx context.Context, name string, settings domain.IndexSettings) error {
	s.mu.Lock()
	s.created = append(s.created, name)
	s.settings = settings
	s.mu.Unlock()
	return s.DocumentStore.CreateIndex(ctx, name, settings)
}

func TestSchedulerStartProvisionsIndex(t *testing.T) {
	store := &indexSpyStore{DocumentStore: memory.NewDocumentStore()}
	scheduler := NewScheduler(testConfig("widgets"), store, &countingRunner{})

	require.NoError(t, scheduler.Start(context.Background()))
	defer scheduler.Stop()

	// Provisioning happens during Start, before the worker is launched.
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{"github-acme"}, store.created)
	assert.Equal(t, domain.DefaultIndexSettings(), store.settings)
}

func TestSchedulerRejectsDoubleStart(t *testing.T) {
	scheduler := NewScheduler(testConfig("widgets"), memory.NewDocumentStore(), &countingRunner{})

	require.NoError(t, scheduler.Start(context.Background()))
	defer scheduler.Stop()

	assert.ErrorIs(t, scheduler.Start(context.Background()), domain.ErrAlreadyRunning)
}

func TestSchedulerStopWaitsForInFlightCycle(t *testing.T) {
	cfg := testConfig("widgets")
	runner := &countingRunner{block: make(chan struct{})}
	scheduler := NewScheduler(cfg, memory.NewDocumentStore(), runner)

	require.NoError(t, scheduler.Start(context.Background()))

	stopped := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(stopped)
	}()

	// Stop must not return while the cycle is still held open.
	select {
	case <-stopped:
		t.Fatal("Stop returned before the in-flight cycle completed")
	case <-time.After(20 * time.Millisecond):
	}

	close(runner.block)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the cycle completed")
	}
	assert.Equal(t, 1, runner.count())
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	scheduler := NewScheduler(testConfig("widgets"), memory.NewDocumentStore(), &countingRunner{})

	require.NoError(t, scheduler.Start(context.Background()))
	require.NoError(t, scheduler.Stop())
	assert.NoError(t, scheduler.Stop())
}

func TestSchedulerRestartsAfterStop(t *testing.T) {
	cfg := testConfig("widgets")
	cfg.Interval = time.Hour
	runner := &countingRunner{}
	scheduler := NewScheduler(cfg, memory.NewDocumentStore(), runner)

	require.NoError(t, scheduler.Start(context.Background()))
	require.NoError(t, scheduler.Stop())
	require.NoError(t, scheduler.Start(context.Background()))
	require.NoError(t, scheduler.Stop())

	assert.Equal(t, 2, runner.count())
}
