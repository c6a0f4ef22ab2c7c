package coordinator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/indexstore"
)

// writeTestWAV encodes numSamples of a simple sawtooth pattern as a 16-bit
// mono WAV file at 22050 Hz, long enough to survive feature extraction's
// minimum-frame requirement.
func writeTestWAV(t *testing.T, path string, numSamples int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 22050},
		Data:           make([]int, numSamples),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = (i % 2000) - 1000
	}

	enc := wav.NewEncoder(f, 22050, 16, 1, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestStartScanIndexesNewFiles(t *testing.T) {
	libDir := t.TempDir()
	indexDir := t.TempDir()

	writeTestWAV(t, filepath.Join(libDir, "Song One - Artist A.wav"), 50000)
	writeTestWAV(t, filepath.Join(libDir, "Song Two - Artist B.wav"), 50000)

	c := New(indexDir)
	err := c.StartScan(libDir, true, "")
	require.NoError(t, err)

	require.Equal(t, 2, c.Index.Len())
	progress := c.Progress()
	require.False(t, progress.IsScanning)
	require.Equal(t, 2, progress.FilesProcessed)
	require.Equal(t, 0, progress.FilesFailed)
	require.GreaterOrEqual(t, progress.ElapsedS, 0.0)

	_, err = os.Stat(filepath.Join(indexDir, "index.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(indexDir, "analysis.bin"))
	require.NoError(t, err)
}

func TestStartScanSkipsUnchangedFilesOnRescan(t *testing.T) {
	libDir := t.TempDir()
	indexDir := t.TempDir()
	writeTestWAV(t, filepath.Join(libDir, "Track - Someone.wav"), 50000)

	c := New(indexDir)
	require.NoError(t, c.StartScan(libDir, true, ""))

	c2 := New(indexDir)
	require.NoError(t, c2.StartScan(libDir, true, ""))
	require.Equal(t, 1, c2.Index.Len())
}

func TestStartScanRejectsConcurrentRun(t *testing.T) {
	indexDir := t.TempDir()
	c := New(indexDir)
	c.active = true

	err := c.StartScan(t.TempDir(), true, "")
	require.Error(t, err)
}

func TestDiffScanSkipsMatchingRecords(t *testing.T) {
	indexDir := t.TempDir()
	c := New(indexDir)

	path := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)

	jobs, skipped := c.diffScan([]string{path})
	require.Len(t, jobs, 1)
	require.Equal(t, 0, skipped)

	c.Index.Put(indexstore.IndexedTrack{
		Path:         path,
		FileSize:     info.Size(),
		ModifiedTime: info.ModTime().Unix(),
	})
	c.Features.Insert(path, []float32{1, 2, 3})

	jobs, skipped = c.diffScan([]string{path})
	require.Len(t, jobs, 0)
	require.Equal(t, 1, skipped)
}

