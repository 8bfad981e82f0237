package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tasks as JSON Lines to stdout",
	RunE: func(*cobra.Command, []string) error {
		lst, err := loadList()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		for _, item := range lst.Items() {
			if err := enc.Encode(item); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		}
		return nil
	},
}
