package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/syncpad/internal/cliui"
	"github.com/idilsaglam/syncpad/internal/reconcile"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass now",
	Long: `Waits out the simulated network latency and then marks every
currently known task as synced. Fails when the connectivity signal is
off; use the interactive surface to watch a pass settle automatically
after a reconnect.`,
	RunE: func(*cobra.Command, []string) error {
		if !monitor.Online() {
			return errors.New("sync: connectivity signal is off")
		}

		lst, err := loadList()
		if err != nil {
			return err
		}

		rec := reconcile.New(cfg.SyncLatency, logger.Named("reconcile"))
		marked := rec.Run(rootCtx, lst)
		if rootCtx.Err() != nil {
			return fmt.Errorf("sync: %w", rootCtx.Err())
		}

		if jsonOutput {
			return outputJSON(map[string]any{"marked": marked, "pending": lst.PendingCount()})
		}
		cliui.OK(fmt.Sprintf("synced %d task(s)", marked))
		return nil
	},
}
