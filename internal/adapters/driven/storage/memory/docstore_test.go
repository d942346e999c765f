package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

func doc(kind domain.Kind, id string, overwrite bool) domain.Document {
	return domain.Document{
		ID:        id,
		Kind:      kind,
		Repo:      "widgets",
		Body:      json.RawMessage(`{"id":"` + id + `"}`),
		Overwrite: overwrite,
	}
}

func TestBulkWriteAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{
		doc(domain.KindEvent, "1", true),
		doc(domain.KindLabel, "abc", false),
	}))

	got, err := store.Get(ctx, "idx", domain.KindEvent, "1")
	require.NoError(t, err)
	assert.Equal(t, "widgets", got.Repo)
	assert.JSONEq(t, `{"id":"1"}`, string(got.Body))

	_, err = store.Get(ctx, "idx", domain.KindEvent, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkWriteHonoursOverwriteFlag(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	first := doc(domain.KindEvent, "1", true)
	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{first}))

	// Overwrite documents replace the stored body.
	updated := first
	updated.Body = json.RawMessage(`{"id":"1","type":"PushEvent"}`)
	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{updated}))

	got, err := store.Get(ctx, "idx", domain.KindEvent, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","type":"PushEvent"}`, string(got.Body))

	// Create-only documents leave an existing body untouched.
	label := doc(domain.KindLabel, "abc", false)
	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{label}))
	collided := label
	collided.Body = json.RawMessage(`{"other":true}`)
	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{collided}))

	got, err = store.Get(ctx, "idx", domain.KindLabel, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc"}`, string(got.Body))
}

func TestSameIDDifferentKindsDoNotCollide(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{
		doc(domain.KindIssue, "7", true),
		doc(domain.KindMilestone, "7", false),
	}))

	assert.Equal(t, 1, store.Count("idx", domain.KindIssue))
	assert.Equal(t, 1, store.Count("idx", domain.KindMilestone))
}

func TestDeleteByKindRemovesOnlyThatKind(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{
		doc(domain.KindLabel, "a", false),
		doc(domain.KindLabel, "b", false),
		doc(domain.KindEvent, "1", true),
	}))

	require.NoError(t, store.DeleteByKind(ctx, "idx", domain.KindLabel))

	assert.Zero(t, store.Count("idx", domain.KindLabel))
	assert.Equal(t, 1, store.Count("idx", domain.KindEvent))
}

func TestStatsCountsPerKind(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{
		doc(domain.KindEvent, "1", true),
		doc(domain.KindEvent, "2", true),
		doc(domain.KindLabel, "a", false),
	}))

	stats, err := store.Stats(ctx, "idx")
	require.NoError(t, err)
	assert.Equal(t, map[domain.Kind]int{
		domain.KindEvent: 2,
		domain.KindLabel: 1,
	}, stats)
}

func TestCreateIndexTwiceIsTolerated(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.CreateIndex(ctx, "idx", domain.DefaultIndexSettings()))
	require.NoError(t, store.BulkWrite(ctx, "idx", []domain.Document{doc(domain.KindEvent, "1", true)}))
	require.NoError(t, store.CreateIndex(ctx, "idx", domain.DefaultIndexSettings()))

	// Re-creating does not wipe existing documents.
	assert.Equal(t, 1, store.Count("idx", domain.KindEvent))
}

func TestIndexesAreIsolated(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.BulkWrite(ctx, "first", []domain.Document{doc(domain.KindEvent, "1", true)}))

	_, err := store.Get(ctx, "second", domain.KindEvent, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
