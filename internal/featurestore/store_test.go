package featurestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New()
	s.Insert("/music/a.mp3", []float32{1.0, 2.5, -3.25})
	s.Insert("/music/b.wav", []float32{0})
	require.NoError(t, s.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, s.Len(), loaded.Len())

	v, ok := loaded.Get("/music/a.mp3")
	require.True(t, ok)
	require.Equal(t, []float32{1.0, 2.5, -3.25}, v)
}

func TestInsertLastWriteWins(t *testing.T) {
	s := New()
	s.Insert("/a.mp3", []float32{1})
	s.Insert("/a.mp3", []float32{2})
	v, _ := s.Get("/a.mp3")
	require.Equal(t, []float32{2}, v)
}

func TestRemove(t *testing.T) {
	s := New()
	s.Insert("/a.mp3", []float32{1})
	s.Remove("/a.mp3")
	_, ok := s.Get("/a.mp3")
	require.False(t, ok)
}

func TestLoadCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "analysis.bin"), []byte("NOPE"), 0o644))
	_, err := Load(dir)
	require.Error(t, err)
}
