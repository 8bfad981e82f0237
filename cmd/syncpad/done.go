package main

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/syncpad/internal/cliui"
)

var doneCmd = &cobra.Command{
	Use:   "done <index>",
	Short: "Toggle completion for the task at the given 1-based index",
	Args:  exactArgs(1, "syncpad done <index>"),
	RunE: func(_ *cobra.Command, args []string) error {
		lst, err := loadList()
		if err != nil {
			return err
		}

		item, err := itemAtIndex(lst, "done", args[0])
		if err != nil {
			return err
		}

		toggled, _ := lst.Toggle(rootCtx, item.ID)
		if jsonOutput {
			return outputJSON(toggled)
		}
		if toggled.Completed {
			cliui.OK("done: " + toggled.Text)
		} else {
			cliui.OK("reopened: " + toggled.Text)
		}
		return nil
	},
}
