// Package driving defines the inbound ports through which hosts drive
// the synchroniser.
package driving

import (
	"context"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

// SyncRunner executes one full synchronisation cycle: purge volatile
// kinds, then refetch every resource kind for every configured
// repository. Failures are isolated per call and reported, never raised.
type SyncRunner interface {
	RunCycle(ctx context.Context) domain.CycleReport
}

// Scheduler is the lifecycle surface exposed to the host runtime.
type Scheduler interface {
	// Start provisions the index and launches the background worker.
	// It does not block.
	Start(ctx context.Context) error

	// Stop signals the worker and waits for the in-flight cycle to
	// finish. Idempotent.
	Stop() error
}
