package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zfogg/sonicindex/internal/apierr"
	"github.com/zfogg/sonicindex/internal/genre"
	"github.com/zfogg/sonicindex/internal/logger"
	"github.com/zfogg/sonicindex/internal/similarity"
)

type scanStartRequest struct {
	InputDir string `json:"input_dir"`
	Offline  bool   `json:"offline"`
	ClientID string `json:"client_id"`
}

type classifyStartRequest struct {
	ModelDir string `json:"model_dir"`
}

func (s *Server) handleTracks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tracks": s.coordinator.Index.All()})
}

func (s *Server) handleScanStart(c *gin.Context) {
	var req scanStartRequest
	_ = c.ShouldBindJSON(&req)

	if req.InputDir == "" {
		req.InputDir = s.inputDir
	}
	if req.ClientID == "" {
		req.ClientID = os.Getenv("ACOUSTID_CLIENT_ID")
	}

	if s.coordinator.Busy() {
		respondError(c, apierr.BusyErr())
		return
	}

	go func() {
		if err := s.coordinator.StartScan(req.InputDir, req.Offline, req.ClientID); err != nil {
			logger.WarnWithFields("background scan failed", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "scan started"})
}

func (s *Server) handleClassifyStart(c *gin.Context) {
	var req classifyStartRequest
	_ = c.ShouldBindJSON(&req)

	if req.ModelDir == "" {
		req.ModelDir = s.modelDir
	}
	if req.ModelDir == "" {
		req.ModelDir = "assets/models"
	}

	if s.coordinator.Busy() {
		respondError(c, apierr.BusyErr())
		return
	}

	if s.coordinator.Classifier == nil {
		s.coordinator.SetClassifier(genre.NewClassifier(req.ModelDir))
	}

	go func() {
		if err := s.coordinator.StartClassify(req.ModelDir); err != nil {
			logger.WarnWithFields("background classify run failed", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "classify started"})
}

func (s *Server) handleScanStatus(c *gin.Context) {
	progress := s.coordinator.Progress()
	body := gin.H{
		"is_scanning":     progress.IsScanning,
		"files_total":     progress.FilesTotal,
		"files_processed": progress.FilesProcessed,
		"files_failed":    progress.FilesFailed,
		"current_file":    progress.CurrentFile,
		"elapsed_s":       progress.ElapsedS,
		"resources": gin.H{
			"cpu_percent":      progress.Resources.CPUPercent,
			"memory_bytes":     progress.Resources.MemoryBytes,
			"disk_free_bytes":  progress.Resources.DiskFreeBytes,
			"disk_total_bytes": progress.Resources.DiskTotalBytes,
		},
	}
	if s.coordinator.Cache != nil {
		stats := s.coordinator.Cache.Stats()
		body["cache"] = gin.H{
			"hits":    stats.Hits,
			"misses":  stats.Misses,
			"l2_hits": stats.L2Hits,
			"entries": stats.Entries,
		}
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleDuplicates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": s.coordinator.Index.FindDuplicates()})
}

func (s *Server) handleRecommend(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, apierr.New(apierr.Io, "", "path query parameter is required"))
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	filters := similarity.Filters{
		SameArtist:   c.Query("same_artist"),
		SameAlbum:    c.Query("same_album"),
		ExcludeAlbum: c.Query("exclude_album"),
		Genre:        c.Query("genre"),
	}

	results := similarity.FindSimilar(s.coordinator.Index, s.coordinator.Features, path, filters, limit)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handlePlaylist(c *gin.Context) {
	tracks := s.coordinator.Index.All()

	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	for _, t := range tracks {
		durationSeconds := int(t.Metadata.DurationS)
		sb.WriteString("#EXTINF:")
		sb.WriteString(strconv.Itoa(durationSeconds))
		sb.WriteString(",")
		sb.WriteString(t.Metadata.Artist)
		sb.WriteString(" - ")
		sb.WriteString(t.Metadata.Title)
		sb.WriteString("\n")
		sb.WriteString(t.Path)
		sb.WriteString("\n")
	}

	c.Data(http.StatusOK, "audio/x-mpegurl", []byte(sb.String()))
}

func (s *Server) handleStream(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("filepath"), "/")
	full := filepath.Join(s.inputDir, rel)

	base := filepath.Clean(s.inputDir)
	cleaned := filepath.Clean(full)
	if cleaned != base && !strings.HasPrefix(cleaned, base+string(os.PathSeparator)) {
		c.Status(http.StatusForbidden)
		return
	}
	c.File(full)
}

func (s *Server) handleDashboard(c *gin.Context) {
	progress := s.coordinator.Progress()
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(renderDashboard(s.coordinator.Index.Len(), progress)))
}
