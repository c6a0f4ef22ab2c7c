package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zfogg/sonicindex/internal/coordinator"
	"github.com/zfogg/sonicindex/internal/lookupcache"
)

var (
	scanInputDir  string
	scanOutputDir string
	scanOffline   bool
	scanClientID  string
	scanRedisURL  string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan an audio library and build or update its index",
	Long: `scan walks --input-dir for audio files, skips anything already indexed
with a matching size and modification time and a stored feature vector,
and enriches everything else:
fingerprint, spectral features, and (unless --offline) an AcoustID lookup
cross-referenced against MusicBrainz. Results are checkpointed into
--output-dir as the run progresses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if scanInputDir == "" {
			return fmt.Errorf("--input-dir is required")
		}
		if scanOutputDir == "" {
			return fmt.Errorf("--output-dir is required")
		}
		if scanClientID == "" {
			scanClientID = os.Getenv("ACOUSTID_CLIENT_ID")
		}

		c := coordinator.New(scanOutputDir)
		if scanRedisURL != "" {
			c.SetCache(lookupcache.New(0).WithRedis(scanRedisURL))
		}

		watchCtx, stopWatch := context.WithCancel(context.Background())
		go watchProgress(watchCtx, c)

		err := c.StartScan(scanInputDir, scanOffline, scanClientID)
		stopWatch()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		snap := c.Progress()
		fmt.Printf("scan complete: %d processed, %d failed, %d total\n",
			snap.FilesProcessed, snap.FilesFailed, snap.FilesTotal)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanInputDir, "input-dir", "", "Directory to scan for audio files (required)")
	scanCmd.Flags().StringVar(&scanOutputDir, "output-dir", "", "Directory to persist the index and feature stores (required)")
	scanCmd.Flags().BoolVar(&scanOffline, "offline", false, "Skip AcoustID/MusicBrainz online lookup")
	scanCmd.Flags().StringVar(&scanClientID, "client-id", "", "AcoustID client ID (default: $ACOUSTID_CLIENT_ID)")
	scanCmd.Flags().StringVar(&scanRedisURL, "redis-url", "", "Optional Redis URL for the online-lookup L2 cache")
}
