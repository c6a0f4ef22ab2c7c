package httpapi

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/zfogg/sonicindex/internal/coordinator"
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>sonicindex</title></head>
<body>
<h1>sonicindex</h1>
<p>{{.TrackCount}} tracks indexed</p>
<p>scanning: {{.IsScanning}}</p>
<p>{{.FilesProcessed}} / {{.FilesTotal}} files processed ({{.FilesFailed}} failed)</p>
<p>current file: {{.CurrentFile}}</p>
<p><a href="/api/tracks">tracks</a> | <a href="/api/duplicates">duplicates</a> | <a href="/playlist.m3u">playlist</a></p>
</body>
</html>
`))

type dashboardData struct {
	TrackCount     int
	IsScanning     bool
	FilesTotal     int
	FilesProcessed int
	FilesFailed    int
	CurrentFile    string
}

func renderDashboard(trackCount int, progress coordinator.Snapshot) string {
	var sb strings.Builder
	if err := dashboardTemplate.Execute(&sb, dashboardData{
		TrackCount:     trackCount,
		IsScanning:     progress.IsScanning,
		FilesTotal:     progress.FilesTotal,
		FilesProcessed: progress.FilesProcessed,
		FilesFailed:    progress.FilesFailed,
		CurrentFile:    progress.CurrentFile,
	}); err != nil {
		return fmt.Sprintf("<html><body>dashboard render failed: %s</body></html>", err)
	}
	return sb.String()
}
