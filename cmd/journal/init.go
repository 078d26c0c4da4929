package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a journal in a directory",
	Long: `Init creates a .journal directory (default: the current directory) with a
journal.yaml recording the chosen adapter and format. Commands run below that
directory use it instead of the one in your home directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		root, err := filepath.Abs(root)
		if err != nil {
			return err
		}

		dataDir = platform.DataDir(root)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dataDir, err)
		}
		if fileCfg, err = platform.LoadConfig(dataDir); err != nil {
			return err
		}

		if cmd.Flags().Changed("adapter") {
			fileCfg.Adapter = adapterFlag
		}
		if cmd.Flags().Changed("format") {
			fileCfg.Format = formatFlag
		}
		if noSeed {
			seed := false
			fileCfg.Seed = &seed
		}
		if err := fileCfg.Save(dataDir); err != nil {
			return fmt.Errorf("failed to write %s: %w", platform.ConfigFile, err)
		}

		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized journal in %s (%d notes)\n", dataDir, svc.Store().Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
