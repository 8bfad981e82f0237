package main

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/syncpad/internal/cliui"
)

var removeCmd = &cobra.Command{
	Use:     "remove <index>",
	Aliases: []string{"rm"},
	Short:   "Remove the task at the given 1-based index",
	Args:    exactArgs(1, "syncpad remove <index>"),
	RunE: func(_ *cobra.Command, args []string) error {
		lst, err := loadList()
		if err != nil {
			return err
		}

		item, err := itemAtIndex(lst, "remove", args[0])
		if err != nil {
			return err
		}

		lst.Delete(rootCtx, item.ID)
		if jsonOutput {
			return outputJSON(item)
		}
		cliui.OK("removed: " + item.Text)
		return nil
	},
}
