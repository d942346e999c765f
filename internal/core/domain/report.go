package domain

import "time"

// CycleReport summarises one completed synchronisation cycle. Write and
// purge failures are counted rather than retried or escalated: a failed
// call never aborts the remaining kinds or repositories, and the next
// cycle refetches everything anyway.
type CycleReport struct {
	// ID uniquely identifies this cycle run.
	ID string

	StartedAt time.Time
	EndedAt   time.Time

	// Documents is the number of documents written to the store.
	Documents int

	// FetchFailures counts abandoned fetch calls (connectivity, rate
	// limiting, bad payloads). Not-found responses are not failures.
	FetchFailures int

	// WriteFailures counts failed page batches.
	WriteFailures int

	// PurgeFailures counts failed volatile-kind purges.
	PurgeFailures int
}

// Duration returns the cycle's wall-clock time.
func (r CycleReport) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Clean reports whether the cycle completed without any failure.
func (r CycleReport) Clean() bool {
	return r.FetchFailures == 0 && r.WriteFailures == 0 && r.PurgeFailures == 0
}
