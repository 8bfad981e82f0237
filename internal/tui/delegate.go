package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/syncpad/internal/cliui"
	"github.com/idilsaglam/syncpad/internal/task"
)

// listItem adapts task.Item to bubbles/list.Item.
type listItem struct {
	item task.Item
}

func (i listItem) Title() string       { return i.item.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Text }

// itemDelegate renders items on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+renderItemLine(it.item))
}

// renderItemLine formats one row: checkbox, text and the pending badge
// for items whose latest state has not been propagated.
func renderItemLine(item task.Item) string {
	box := cliui.Muted.Render(cliui.BoxUnchecked)
	text := item.Text
	if item.Completed {
		box = cliui.Success.Render(cliui.BoxChecked)
		text = cliui.Done.Render(text)
	}
	line := box + " " + text
	if !item.Synced {
		line += " " + cliui.Pending.Render("◌ pending")
	}
	return line
}
