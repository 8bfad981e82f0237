package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No store or logger needed to print a version.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(*cobra.Command, []string) error {
		if jsonOutput {
			return outputJSON(map[string]string{"version": version, "commit": commit})
		}
		fmt.Printf("syncpad %s (%s)\n", version, commit)
		return nil
	},
}
