package httpapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/coordinator"
	"github.com/zfogg/sonicindex/internal/indexstore"
)

func newTestServer(t *testing.T) *Server {
	gin.SetMode(gin.TestMode)
	indexDir := t.TempDir()
	c := coordinator.New(indexDir)
	c.Index.Put(indexstore.IndexedTrack{
		Path:     "/music/song.mp3",
		Metadata: indexstore.Metadata{Title: "Song", Artist: "Artist", DurationS: 180},
	})
	return New(c, t.TempDir(), "")
}

func TestHandleTracksReturnsIndexedTracks(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/tracks", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "song.mp3")
}

func TestHandleScanStatusReportsIdle(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/scan/status", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"is_scanning":false`)
}

func TestHandleDuplicatesReturnsEmptyForSingleTrack(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/duplicates", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"groups":null`)
}

func TestHandlePlaylistIncludesExtendedInfo(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/playlist.m3u", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "#EXTM3U")
	require.Contains(t, w.Body.String(), "Artist - Song")
}

func TestHandleRecommendRequiresPath(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/recommend", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.NotEqual(t, http.StatusOK, w.Code)
}

func TestHandleDashboardRenders(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "sonicindex")
}

func TestHandleStreamServesFileWithinInputDir(t *testing.T) {
	gin.SetMode(gin.TestMode)
	inputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "track.mp3"), []byte("data"), 0o644))

	c := coordinator.New(t.TempDir())
	s := New(c, inputDir, "")

	req := httptest.NewRequest(http.MethodGet, "/stream/track.mp3", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

// TestHandleStreamRejectsSiblingDirectoryTraversal guards against a prefix
// check that would wrongly admit a sibling directory whose name happens to
// start with inputDir's name (inputDir "…/a", sibling "…/ab").
func TestHandleStreamRejectsSiblingDirectoryTraversal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	parent := t.TempDir()
	inputDir := filepath.Join(parent, "a")
	siblingDir := filepath.Join(parent, "ab")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	require.NoError(t, os.MkdirAll(siblingDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(siblingDir, "secret.txt"), []byte("top secret"), 0o644))

	c := coordinator.New(t.TempDir())
	s := New(c, inputDir, "")

	req := httptest.NewRequest(http.MethodGet, "/stream/../ab/secret.txt", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
