package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zfogg/sonicindex/internal/config"
	"github.com/zfogg/sonicindex/internal/logger"
)

var (
	verbose    bool
	configPath string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "sonicindex",
	Short: "Incremental audio library scanner, enricher, and recommender",
	Long: color.New(color.Bold).Sprint("sonicindex") + ` builds and maintains a local
index of an audio library: fingerprints, spectral features, optional online
metadata lookup, and neural genre classification, served over a small HTTP
API with similarity search and playlist export.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		logLevel := "info"
		if verbose {
			logLevel = "debug"
		}
		if logFile == "" {
			logFile = config.GetString("log.file")
		}
		if err := logger.Initialize(logLevel, logFile); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
}

// Execute runs the root command, printing any error to stderr and exiting
// non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/sonicindex/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file (default: the log.file config value, sonicindex.log in the config directory)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(versionCmd)
}
