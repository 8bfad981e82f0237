package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/syncpad/internal/task"
)

func sampleItems() []task.Item {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return []task.Item{
		{ID: "1", Text: "first open", CreatedAt: base, Synced: true},
		{ID: "2", Text: "second done", Completed: true, CreatedAt: base.Add(time.Minute), Synced: true},
		{ID: "3", Text: "third open", CreatedAt: base.Add(2 * time.Minute)},
	}
}

func TestPanelLinesFlatKeepsListOrder(t *testing.T) {
	joined := strings.Join(panelLines(sampleItems(), true, 1, false), "\n")

	assert.NotContains(t, joined, "Pending", "flat mode has no section headers")
	i1 := strings.Index(joined, "first open")
	i2 := strings.Index(joined, "second done")
	i3 := strings.Index(joined, "third open")
	require.True(t, i1 >= 0 && i2 >= 0 && i3 >= 0)
	assert.Less(t, i1, i2)
	assert.Less(t, i2, i3)
}

func TestPanelLinesGroupedKeepsFlatIndexes(t *testing.T) {
	lines := panelLines(sampleItems(), false, 1, true)

	find := func(sub string) int {
		for i, l := range lines {
			if strings.Contains(l, sub) {
				return i
			}
		}
		return -1
	}

	pendHdr := find("Pending")
	doneHdr := find("Done")
	first := find("first open")
	third := find("third open")
	second := find("second done")
	require.True(t, pendHdr >= 0 && doneHdr >= 0 && first >= 0 && third >= 0 && second >= 0)

	assert.Less(t, pendHdr, first)
	assert.Less(t, first, third)
	assert.Less(t, third, doneHdr)
	assert.Less(t, doneHdr, second)

	// Indexes come from the flat ordering, which done/remove resolve
	// against, not from the position inside a section.
	assert.True(t, strings.HasPrefix(lines[second], " 2."), "got %q", lines[second])
	assert.True(t, strings.HasPrefix(lines[third], " 3."), "got %q", lines[third])
}

func TestPanelLinesGroupedEmptySection(t *testing.T) {
	items := []task.Item{{ID: "1", Text: "only open", CreatedAt: time.Now(), Synced: true}}
	joined := strings.Join(panelLines(items, true, 0, true), "\n")
	assert.Contains(t, joined, "(none)")
}

func TestRenderRowTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("x", 120)
	row := renderRow(1, task.Item{ID: "1", Text: long, CreatedAt: time.Now(), Synced: true})

	assert.Contains(t, row, strings.Repeat("x", 77)+"...")
	assert.NotContains(t, row, strings.Repeat("x", 78))
}

func TestRenderRowMarksUnsyncedItems(t *testing.T) {
	row := renderRow(1, task.Item{ID: "1", Text: "offline edit", CreatedAt: time.Now()})
	assert.Contains(t, row, "◌ pending")
}
