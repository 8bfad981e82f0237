// Package tasklist holds the in-memory task list and mirrors every
// mutation to an injected persistence side effect.
//
// The list is the single state container of the application. It must be
// driven from one event loop at a time (the TUI's update goroutine or a
// CLI command body) and performs no locking of its own. Rendering state
// is derived from it; nothing else holds item state.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/syncpad/internal/store"
	"github.com/idilsaglam/syncpad/internal/task"
)

// ErrEmptyText is returned by Add when the trimmed text is empty. It is
// the only error mutations surface; storage failures are logged and
// swallowed per the store contract.
var ErrEmptyText = errors.New("task text is empty")

// Config wires a List's collaborators.
type Config struct {
	Store store.Store

	// Online reports the current connectivity signal. Every mutation
	// stamps the touched item's synced flag from it. Nil means always
	// offline.
	Online func() bool

	Logger *zap.Logger
}

// List owns the in-memory items and applies every mutation to the store.
type List struct {
	store  store.Store
	online func() bool
	logger *zap.Logger

	items []task.Item

	// versions carries a per-item mutation stamp, bumped on every local
	// mutation. A reconciliation pass records the stamps it snapshotted
	// and marks only items whose stamp is unchanged, so a mutation made
	// while a pass is in flight keeps its pending state. Stamps live in
	// memory only; they are not part of the persisted model.
	versions map[string]uint64
}

// New builds an empty list. Call Reload to populate it from the store.
func New(cfg Config) *List {
	online := cfg.Online
	if online == nil {
		online = func() bool { return false }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List{
		store:    cfg.Store,
		online:   online,
		logger:   logger,
		versions: make(map[string]uint64),
	}
}

// Reload replaces the in-memory state with the store's contents and
// resets all mutation stamps. A snapshot taken before a reload must not
// be completed after it.
func (l *List) Reload(ctx context.Context) error {
	items, err := l.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	task.SortByCreation(items)
	l.items = items
	l.versions = make(map[string]uint64, len(items))
	return nil
}

// Add creates an item from text, stamps its synced flag from the current
// connectivity signal and persists it. The only error it returns is
// ErrEmptyText; a storage failure is logged and the in-memory add stands.
func (l *List) Add(ctx context.Context, text string) (task.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Item{}, ErrEmptyText
	}

	now := time.Now()
	item := task.Item{
		ID:        task.NewID(now),
		Text:      text,
		CreatedAt: now,
		Synced:    l.online(),
	}
	l.items = append(l.items, item)
	l.versions[item.ID]++
	l.persist(ctx, item)
	return item, nil
}

// Toggle flips completion for id and re-stamps its synced flag from the
// current connectivity signal. The second return is false when no item
// has that id.
func (l *List) Toggle(ctx context.Context, id string) (task.Item, bool) {
	i := l.index(id)
	if i < 0 {
		return task.Item{}, false
	}
	l.items[i].Completed = !l.items[i].Completed
	l.items[i].Synced = l.online()
	l.versions[id]++
	l.persist(ctx, l.items[i])
	return l.items[i], true
}

// Edit replaces the text of an existing item, re-stamping its synced flag
// like any other mutation. Empty text is rejected with ErrEmptyText.
func (l *List) Edit(ctx context.Context, id, text string) (task.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Item{}, ErrEmptyText
	}
	i := l.index(id)
	if i < 0 {
		return task.Item{}, fmt.Errorf("edit: no item %s", id)
	}
	l.items[i].Text = text
	l.items[i].Synced = l.online()
	l.versions[id]++
	l.persist(ctx, l.items[i])
	return l.items[i], nil
}

// Delete removes id from memory and from the store. It reports whether
// the id was present in memory; the store delete is attempted either way.
func (l *List) Delete(ctx context.Context, id string) bool {
	found := false
	if i := l.index(id); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
		found = true
	}
	delete(l.versions, id)
	if err := l.store.Delete(ctx, id); err != nil {
		l.logger.Error("store delete failed", zap.String("id", id), zap.Error(err))
	}
	return found
}

// Restore re-inserts a previously deleted item, keeping its identity but
// re-stamping the synced flag: restoring is a local mutation like any
// other. Items() ordering is preserved by re-sorting.
func (l *List) Restore(ctx context.Context, item task.Item) task.Item {
	item.Synced = l.online()
	l.items = append(l.items, item)
	task.SortByCreation(l.items)
	l.versions[item.ID]++
	l.persist(ctx, item)
	return item
}

// Get returns the item with the given id.
func (l *List) Get(id string) (task.Item, bool) {
	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	return task.Item{}, false
}

// Items returns a copy of the items, oldest first.
func (l *List) Items() []task.Item {
	out := make([]task.Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the number of items.
func (l *List) Len() int { return len(l.items) }

// PendingCount counts items whose latest state has not been propagated.
func (l *List) PendingCount() int {
	n := 0
	for _, item := range l.items {
		if !item.Synced {
			n++
		}
	}
	return n
}

// persist mirrors one item to the store. Failures are logged, never
// surfaced to the caller, never retried and never rolled back; the
// in-memory state stays authoritative for the session.
func (l *List) persist(ctx context.Context, item task.Item) {
	if err := l.store.Put(ctx, item); err != nil {
		l.logger.Error("store put failed", zap.String("id", item.ID), zap.Error(err))
		return
	}
	if item.Synced {
		// The remote mirror is simulated: a push is a log line.
		l.logger.Info("sync: pushed item", zap.String("id", item.ID))
	}
}

func (l *List) index(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
