package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/syncpad/internal/cliui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and pending counts",
	RunE: func(*cobra.Command, []string) error {
		lst, err := loadList()
		if err != nil {
			return err
		}

		online := monitor.Online()
		pending := lst.PendingCount()

		if jsonOutput {
			return outputJSON(map[string]any{
				"online":   online,
				"items":    lst.Len(),
				"pending":  pending,
				"data_dir": cfg.DataDir,
			})
		}

		conn := cliui.Success.Render("● online")
		if !online {
			conn = cliui.Pending.Render("○ offline")
		}
		lines := []string{
			cliui.Title.Render("syncpad status"),
			"",
			"connectivity: " + conn,
			fmt.Sprintf("items:        %d", lst.Len()),
			fmt.Sprintf("pending:      %d", pending),
			"data dir:     " + cfg.DataDir,
		}
		if !online && pending > 0 {
			lines = append(lines, "", cliui.Pending.Render(fmt.Sprintf("Offline: %d change(s) waiting to sync", pending)))
		}
		cliui.Panel(lines)
		return nil
	},
}
