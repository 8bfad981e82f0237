package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/syncpad/internal/cliui"
	"github.com/idilsaglam/syncpad/internal/tasklist"
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task",
	Args:  minArgs(1, "syncpad add <text...>"),
	RunE: func(_ *cobra.Command, args []string) error {
		lst, err := loadList()
		if err != nil {
			return err
		}

		item, err := lst.Add(rootCtx, strings.Join(args, " "))
		if errors.Is(err, tasklist.ErrEmptyText) {
			return usageError{msg: "add: task text is empty"}
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(item)
		}
		if item.Synced {
			cliui.OK("added: " + item.Text)
		} else {
			cliui.OK("added: " + item.Text + cliui.Pending.Render("  ◌ pending sync"))
		}
		return nil
	},
}
