package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/zfogg/sonicindex/internal/coordinator"
)

// watchProgress prints a single-line, carriage-return-updated progress
// indicator while ctx is alive, but only when stdout is an interactive
// terminal. Piped/redirected output stays quiet until the final summary.
func watchProgress(ctx context.Context, c *coordinator.Coordinator) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Print("\r\033[K")
			return
		case <-ticker.C:
			snap := c.Progress()
			if !snap.IsScanning {
				continue
			}
			line := fmt.Sprintf("\r%s %d/%d  %s",
				color.CyanString("scanning"),
				snap.FilesProcessed, snap.FilesTotal,
				truncatePath(snap.CurrentFile, 60),
			)
			fmt.Print(line + "\033[K")
		}
	}
}

func truncatePath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-max+3:]
}
