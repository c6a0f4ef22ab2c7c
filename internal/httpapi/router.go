// Package httpapi exposes the coordinator and evaluator over HTTP: a small
// JSON API plus a minimal dashboard and static file streaming under the
// configured input directory. It never shares mutable state with scan
// workers directly, only through the Coordinator's progress snapshot and
// its in-memory stores.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/zfogg/sonicindex/internal/coordinator"
)

// Server wires the Coordinator into a gin engine.
type Server struct {
	coordinator *coordinator.Coordinator
	inputDir    string
	modelDir    string
	router      *gin.Engine
}

// New builds a Server bound to an already-constructed Coordinator.
// inputDir, when set, enables /stream/<path> static serving; modelDir feeds
// /api/classify/start.
func New(c *coordinator.Coordinator, inputDir, modelDir string) *Server {
	s := &Server{coordinator: c, inputDir: inputDir, modelDir: modelDir}
	s.router = s.buildRouter()
	return s
}

// Handler returns the underlying http.Handler for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(otelgin.Middleware("sonicindex"))
	r.Use(metricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST"}
	r.Use(cors.New(corsConfig))

	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", s.handleDashboard)
	r.GET("/api/tracks", s.handleTracks)
	r.POST("/api/scan/start", s.handleScanStart)
	r.POST("/api/classify/start", s.handleClassifyStart)
	r.GET("/api/scan/status", s.handleScanStatus)
	r.GET("/api/duplicates", s.handleDuplicates)
	r.GET("/api/recommend", s.handleRecommend)
	r.GET("/playlist.m3u", s.handlePlaylist)

	if s.inputDir != "" {
		r.GET("/stream/*filepath", s.handleStream)
	}

	return r
}

// Run starts listening on addr (":3000"-style) and blocks until the server
// stops, returning the error from ListenAndServe.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}
