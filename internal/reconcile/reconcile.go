// Package reconcile drives the pass that marks pending items synced once
// connectivity returns.
package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/syncpad/internal/tasklist"
)

// Reconciler waits out a fixed simulated network latency and then marks a
// snapshot of the list synced. The delay stands in for the remote round
// trip; a real client would replace Wait with an actual request without
// changing the caller's contract.
//
// One pass runs per offline-to-online transition. A pass started is run
// to completion even if connectivity drops again while it waits; the
// context is for process shutdown, not for signal flaps.
type Reconciler struct {
	delay  time.Duration
	logger *zap.Logger
}

// New builds a reconciler with the given simulated latency.
func New(delay time.Duration, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{delay: delay, logger: logger}
}

// Delay returns the simulated latency.
func (r *Reconciler) Delay() time.Duration { return r.delay }

// Wait blocks for the simulated latency or until ctx is done, reporting
// whether the pass should proceed to completion.
func (r *Reconciler) Wait(ctx context.Context) bool {
	if r.delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(r.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Run executes one whole pass on the caller's goroutine: snapshot the
// list, wait out the latency, then mark the snapshot synced. The snapshot
// is taken before the delay so the pass settles exactly the state that
// existed when connectivity returned; anything mutated during the delay
// stays pending. It returns the number of items marked.
//
// Callers that interleave the pass with other events (the TUI) use
// Snapshot, Wait and CompleteSync directly instead.
func (r *Reconciler) Run(ctx context.Context, list *tasklist.List) int {
	snapshot := list.Snapshot()
	r.logger.Info("reconcile: pass started",
		zap.Int("items", len(snapshot)),
		zap.Duration("delay", r.delay))

	if !r.Wait(ctx) {
		r.logger.Info("reconcile: pass abandoned", zap.Error(ctx.Err()))
		return 0
	}

	marked := list.CompleteSync(ctx, snapshot)
	r.logger.Info("reconcile: pass completed", zap.Int("marked", marked))
	return marked
}
