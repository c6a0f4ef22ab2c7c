package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zfogg/sonicindex/internal/coordinator"
	"github.com/zfogg/sonicindex/internal/genre"
	"github.com/zfogg/sonicindex/internal/httpapi"
	"github.com/zfogg/sonicindex/internal/logger"
	"github.com/zfogg/sonicindex/internal/lookupcache"
	"github.com/zfogg/sonicindex/internal/telemetry"
)

var (
	serveIndexDir string
	serveInputDir string
	serveModelDir string
	servePort     int
	serveRedisURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard, JSON API, and similarity search over HTTP",
	Long: `serve loads an already-scanned index and feature store and exposes them
over HTTP: a dashboard, a JSON track listing, scan/classify triggers,
duplicate detection, similarity recommendations, an M3U playlist export,
and (when --input-dir is set) static audio streaming.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveIndexDir == "" {
			return fmt.Errorf("--index-dir is required")
		}

		tp, err := telemetry.InitTracer(telemetry.Config{
			ServiceName:  "sonicindex",
			Environment:  getEnvOrDefault("SONICINDEX_ENV", "development"),
			OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			Enabled:      os.Getenv("OTEL_ENABLED") == "true",
			SamplingRate: 1.0,
		})
		if err != nil {
			logger.WarnWithFields("telemetry init failed, continuing without tracing", err)
		}
		if tp != nil {
			defer func() { _ = tp.Shutdown(context.Background()) }()
		}

		c := coordinator.New(serveIndexDir)
		if serveModelDir != "" {
			c.SetClassifier(genre.NewClassifier(serveModelDir))
		}
		if serveRedisURL != "" {
			c.SetCache(lookupcache.New(0).WithRedis(serveRedisURL))
		}

		srv := httpapi.New(c, serveInputDir, serveModelDir)

		addr := ":" + strconv.Itoa(servePort)
		logger.InfoWithFields("sonicindex serving", logger.WithStage("serve"))
		return srv.Run(addr)
	},
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	serveCmd.Flags().StringVar(&serveIndexDir, "index-dir", "", "Directory holding the index and feature stores (required)")
	serveCmd.Flags().StringVar(&serveInputDir, "input-dir", "", "Audio library root, enables /stream/<path> and scan triggers")
	serveCmd.Flags().StringVar(&serveModelDir, "model-dir", "", "Directory containing the ONNX genre model")
	serveCmd.Flags().IntVar(&servePort, "port", 3000, "HTTP listen port")
	serveCmd.Flags().StringVar(&serveRedisURL, "redis-url", "", "Optional Redis URL for the online-lookup L2 cache")
}
