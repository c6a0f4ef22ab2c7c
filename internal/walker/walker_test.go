package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumerateFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.mp3", "b.flac", "c.wav", "d.m4a", "e.ogg", "f.txt", "g.MP3"}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	got, err := Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, got, 6, "f.txt must be excluded, extension match is case-insensitive")
}

func TestEnumerateRecursesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "track.mp3"), []byte("x"), 0o644))

	got, err := Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestEnumerateEmptyDir(t *testing.T) {
	got, err := Enumerate(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, got)
}
