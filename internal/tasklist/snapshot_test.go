package tasklist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSyncMarksSnapshot(t *testing.T) {
	ctx := context.Background()
	l, ms := newList(t, offline)

	_, err := l.Add(ctx, "a")
	require.NoError(t, err)
	_, err = l.Add(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, 2, l.PendingCount())

	snap := l.Snapshot()
	marked := l.CompleteSync(ctx, snap)

	assert.Equal(t, 2, marked)
	assert.Zero(t, l.PendingCount())

	stored, err := ms.ListAll(ctx)
	require.NoError(t, err)
	for _, item := range stored {
		assert.True(t, item.Synced, "item %s (%s)", item.ID, item.Text)
	}
}

func TestCompleteSyncKeepsLateMutationsPending(t *testing.T) {
	ctx := context.Background()
	l, ms := newList(t, offline)

	stable, err := l.Add(ctx, "stable")
	require.NoError(t, err)
	touched, err := l.Add(ctx, "touched during pass")
	require.NoError(t, err)

	snap := l.Snapshot()

	// Mutation lands while the pass is waiting out the latency.
	_, ok := l.Toggle(ctx, touched.ID)
	require.True(t, ok)

	marked := l.CompleteSync(ctx, snap)
	assert.Equal(t, 1, marked)

	byID := make(map[string]bool)
	for _, item := range l.Items() {
		byID[item.ID] = item.Synced
	}
	assert.True(t, byID[stable.ID])
	assert.False(t, byID[touched.ID], "late mutation must stay pending")

	stored, err := ms.ListAll(ctx)
	require.NoError(t, err)
	for _, item := range stored {
		if item.ID == touched.ID {
			assert.False(t, item.Synced)
		}
	}
}

func TestCompleteSyncSkipsDeletedItems(t *testing.T) {
	ctx := context.Background()
	l, ms := newList(t, offline)

	doomed, err := l.Add(ctx, "doomed")
	require.NoError(t, err)

	snap := l.Snapshot()
	require.True(t, l.Delete(ctx, doomed.ID))

	marked := l.CompleteSync(ctx, snap)
	assert.Zero(t, marked)
	assert.Zero(t, l.Len())
	assert.Zero(t, ms.Len(), "completed pass must not resurrect deleted items")
}

func TestCompleteSyncIgnoresItemsAddedAfterSnapshot(t *testing.T) {
	ctx := context.Background()
	l, _ := newList(t, offline)

	_, err := l.Add(ctx, "before")
	require.NoError(t, err)
	snap := l.Snapshot()

	late, err := l.Add(ctx, "after")
	require.NoError(t, err)

	marked := l.CompleteSync(ctx, snap)
	assert.Equal(t, 1, marked)

	for _, item := range l.Items() {
		if item.ID == late.ID {
			assert.False(t, item.Synced)
		}
	}
}

func TestSnapshotInvalidatedByReload(t *testing.T) {
	ctx := context.Background()
	l, _ := newList(t, offline)

	_, err := l.Add(ctx, "a")
	require.NoError(t, err)
	snap := l.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, uint64(1), snap[0].Version)

	require.NoError(t, l.Reload(ctx))

	// Reload reset the stamps, so the old snapshot no longer matches.
	marked := l.CompleteSync(ctx, snap)
	assert.Zero(t, marked)
	assert.False(t, l.Items()[0].Synced)
}
