package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/syncpad/internal/cliui"
	"github.com/idilsaglam/syncpad/internal/task"
)

var listGroup bool

func init() {
	listCmd.Flags().BoolVar(&listGroup, "group", false, "group tasks by pending/done")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the task list",
	RunE: func(*cobra.Command, []string) error {
		lst, err := loadList()
		if err != nil {
			return err
		}

		items := lst.Items()
		if jsonOutput {
			return outputJSON(items)
		}
		cliui.Panel(panelLines(items, monitor.Online(), lst.PendingCount(), listGroup))
		return nil
	},
}

// panelLines builds the bordered listing: header with counts, progress
// bar, one row per item and the connectivity footer. Grouped mode splits
// the rows into pending/done sections; rows keep their flat 1-based
// index either way, since done and remove resolve against the flat
// ordering.
func panelLines(items []task.Item, online bool, pending int, grouped bool) []string {
	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		cliui.Title.Render("Tasks"),
		cliui.Success.Render("✔"), done,
		cliui.Pending.Render("•"), len(items)-done,
		cliui.Accent.Render("Total"), len(items),
	)
	lines := []string{header, cliui.Muted.Render(cliui.ProgressBar(done, len(items), 28)), ""}

	if grouped {
		lines = append(lines, groupedRows(items)...)
	} else {
		lines = append(lines, flatRows(items)...)
	}

	footer := cliui.Success.Render("● online")
	if !online {
		footer = cliui.Pending.Render("○ offline")
	}
	if pending > 0 {
		footer += cliui.Muted.Render(fmt.Sprintf("  %d pending", pending))
	}
	lines = append(lines, "", footer)
	return lines
}

func flatRows(items []task.Item) []string {
	if len(items) == 0 {
		return []string{cliui.Muted.Render("no tasks, add one with `syncpad add`")}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		out = append(out, renderRow(i+1, item))
	}
	return out
}

func groupedRows(items []task.Item) []string {
	var open, closed []string
	for i, item := range items {
		row := renderRow(i+1, item)
		if item.Completed {
			closed = append(closed, row)
		} else {
			open = append(open, row)
		}
	}

	none := []string{cliui.Muted.Render("(none)")}
	if len(open) == 0 {
		open = none
	}
	if len(closed) == 0 {
		closed = none
	}

	lines := []string{cliui.Accent.Render("Pending")}
	lines = append(lines, open...)
	lines = append(lines, "", cliui.Accent.Render("Done"))
	lines = append(lines, closed...)
	return lines
}

func renderRow(n int, item task.Item) string {
	text := item.Text
	if utf8.RuneCountInString(text) > 80 {
		text = string([]rune(text)[:77]) + "..."
	}
	box := cliui.Muted.Render(cliui.BoxUnchecked)
	if item.Completed {
		box = cliui.Success.Render(cliui.BoxChecked)
		text = cliui.Done.Render(text)
	}
	row := fmt.Sprintf("%2d. %s %s", n, box, text)
	if !item.Synced {
		row += " " + cliui.Pending.Render("◌ pending")
	}
	return row
}
