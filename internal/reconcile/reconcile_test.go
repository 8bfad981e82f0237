package reconcile

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/idilsaglam/syncpad/internal/connectivity"
	"github.com/idilsaglam/syncpad/internal/store/memstore"
	"github.com/idilsaglam/syncpad/internal/tasklist"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWaitHonorsDelay(t *testing.T) {
	r := New(30*time.Millisecond, nil)

	start := time.Now()
	ok := r.Wait(context.Background())
	require.True(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWaitStopsOnShutdown(t *testing.T) {
	r := New(time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, r.Wait(ctx))
}

func TestRunMarksSnapshotSynced(t *testing.T) {
	ctx := context.Background()
	list := tasklist.New(tasklist.Config{Store: memstore.New(), Online: connectivity.Offline})

	_, err := list.Add(ctx, "a")
	require.NoError(t, err)
	_, err = list.Add(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, 2, list.PendingCount())

	marked := New(0, zap.NewNop()).Run(ctx, list)
	assert.Equal(t, 2, marked)
	assert.Zero(t, list.PendingCount())
}

func TestRunAbandonedOnShutdownMarksNothing(t *testing.T) {
	list := tasklist.New(tasklist.Config{Store: memstore.New(), Online: connectivity.Offline})

	_, err := list.Add(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	marked := New(time.Hour, nil).Run(ctx, list)
	assert.Zero(t, marked)
	assert.Equal(t, 1, list.PendingCount())
}

// TestOfflineAddThenReconnect walks the whole path: an item added while
// offline carries a pending flag until the monitor reports the transition
// and a pass settles it.
func TestOfflineAddThenReconnect(t *testing.T) {
	ctx := context.Background()

	var sig atomic.Bool
	monitor := connectivity.New(sig.Load, 10*time.Millisecond, zap.NewNop())
	list := tasklist.New(tasklist.Config{
		Store:  memstore.New(),
		Online: monitor.Online,
	})

	item, err := list.Add(ctx, "Buy milk")
	require.NoError(t, err)
	require.False(t, item.Synced)
	require.Equal(t, 1, list.PendingCount())

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		monitor.Run(runCtx)
	}()

	sig.Store(true)
	select {
	case change := <-monitor.Changes():
		require.True(t, change.Online)
	case <-time.After(3 * time.Second):
		t.Fatal("no connectivity transition observed")
	}

	marked := New(20*time.Millisecond, zap.NewNop()).Run(ctx, list)
	assert.Equal(t, 1, marked)
	assert.Zero(t, list.PendingCount())
	assert.True(t, list.Items()[0].Synced)

	cancel()
	<-done
}
