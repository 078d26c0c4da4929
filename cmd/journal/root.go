package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal"
	"github.com/aretw0/journal/internal/platform"
	"github.com/aretw0/journal/pkg/core"
)

var (
	verbose     bool
	dataFlag    string
	adapterFlag string
	formatFlag  string
	noSeed      bool

	// resolved in PersistentPreRunE
	dataDir string
	fileCfg platform.FileConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A local notes journal with tags and search",
	Long: `Journal keeps short notes on this machine.
Notes can be tagged, searched by title, content or tag, and shown in a light or dark theme.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		dataDir, err = journal.ResolveDataDir(dataFlag, cwd)
		if err != nil {
			return err
		}

		fileCfg, err = platform.LoadConfig(dataDir)
		if err != nil {
			return err
		}

		level, _ := fileCfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		logger.Debug("using journal", "path", dataDir)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openService builds the service for the resolved data directory.
// Precedence: flags > journal.yaml > terminal background hint.
func openService(cmd *cobra.Command) (*core.Service, error) {
	opts := []journal.Option{
		journal.WithLogger(slog.Default()),
		journal.WithThemeHint(terminalThemeHint),
	}
	opts = append(opts, fileCfg.Options()...)

	if cmd.Flags().Changed("adapter") {
		opts = append(opts, journal.WithAdapter(adapterFlag))
	}
	if cmd.Flags().Changed("format") {
		opts = append(opts, journal.WithFormat(formatFlag))
	}
	if noSeed {
		opts = append(opts, journal.WithSeeding(false))
	}

	svc, err := journal.New(dataDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal at %s: %w", dataDir, err)
	}
	return svc, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Data directory (default: nearest .journal, then ~/.journal)")
	rootCmd.PersistentFlags().StringVar(&adapterFlag, "adapter", platform.AdapterFS, "Storage adapter (fs, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "json", "Collection format for the fs adapter (json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "Do not create example notes on first run")
}
