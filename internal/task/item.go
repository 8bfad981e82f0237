// Package task defines the item model shared by the store, the list
// container and both UI surfaces.
package task

import (
	"sort"
	"time"
)

// Item is the domain model for a single task.
//
// Synced is true iff the item's current state is believed mirrored
// remotely; every local mutation re-stamps it from the connectivity
// signal, and the reconciler flips it back to true once a pass completes.
type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	Synced    bool      `json:"synced"`
}

// SortByCreation orders items oldest first, breaking ties by ID so the
// ordering is stable across reloads.
func SortByCreation(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
