package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of journal",
	Args:  cobra.NoArgs,
	// No data directory is needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "journal version %s\n", strings.TrimSpace(journal.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
