package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zfogg/sonicindex/internal/coordinator"
)

var (
	classifyIndexDir string
	classifyModelDir string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Run neural genre classification over already-indexed tracks",
	Long: `classify re-decodes every indexed track without a genre label and runs
it through the ONNX genre classifier, writing the resulting labels back into
the index. It never touches fingerprints or feature vectors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if classifyIndexDir == "" {
			return fmt.Errorf("--index-dir is required")
		}
		if classifyModelDir == "" {
			classifyModelDir = "assets/models"
		}

		c := coordinator.New(classifyIndexDir)

		watchCtx, stopWatch := context.WithCancel(context.Background())
		go watchProgress(watchCtx, c)

		err := c.StartClassify(classifyModelDir)
		stopWatch()
		if err != nil {
			return fmt.Errorf("classify failed: %w", err)
		}

		snap := c.Progress()
		fmt.Printf("classify complete: %d processed, %d failed, %d total\n",
			snap.FilesProcessed, snap.FilesFailed, snap.FilesTotal)
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyIndexDir, "index-dir", "", "Directory holding the index and feature stores (required)")
	classifyCmd.Flags().StringVar(&classifyModelDir, "model-dir", "assets/models", "Directory containing the ONNX genre model")
}
