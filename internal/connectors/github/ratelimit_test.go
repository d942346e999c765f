package github

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerObserve(t *testing.T) {
	pacer := NewPacer(time.Millisecond)

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "0")
	resp.Header.Set(HeaderRateLimit, "5000")
	resp.Header.Set(HeaderRateReset, "1700000000")

	pacer.Observe(resp)

	assert.True(t, pacer.Exhausted())
	limitErr := pacer.limitError()
	assert.Equal(t, 0, limitErr.Remaining)
	assert.Equal(t, 5000, limitErr.Limit)
	assert.Equal(t, time.Unix(1700000000, 0), limitErr.ResetAt)
}

func TestPacerUnknownQuotaIsNotExhausted(t *testing.T) {
	pacer := NewPacer(time.Millisecond)
	assert.False(t, pacer.Exhausted())

	// Headers absent: state stays unknown.
	pacer.Observe(&http.Response{Header: http.Header{}})
	assert.False(t, pacer.Exhausted())

	pacer.Observe(nil)
	assert.False(t, pacer.Exhausted())
}

func TestPacerWaitSpacesCalls(t *testing.T) {
	pacer := NewPacer(20 * time.Millisecond)

	start := time.Now()
	require.NoError(t, pacer.Wait(context.Background()))
	require.NoError(t, pacer.Wait(context.Background()))
	elapsed := time.Since(start)

	// First call passes immediately, the second waits out the interval.
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
}

func TestPacerWaitHonoursCancellation(t *testing.T) {
	pacer := NewPacer(time.Hour)

	// Drain the initial token so the next wait would block.
	require.NoError(t, pacer.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := pacer.Wait(ctx)
	assert.Error(t, err)
}
