package indexstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/apierr"
)

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
}

func TestLoadCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte("{not json"), 0o644))
	_, err := Load(dir)
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.Corrupt))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New()
	s.Put(IndexedTrack{
		Path:         "/music/a.mp3",
		FileSize:     1000,
		ModifiedTime: 123,
		ScannedAt:    456,
		Metadata: Metadata{
			Title:       "Song A",
			Artist:      "Artist A",
			DurationS:   3.5,
			Fingerprint: "abc",
			Genres:      []GenreLabel{{Label: "rock", Confidence: 0.9}},
		},
	})
	require.NoError(t, s.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, s.Len(), loaded.Len())

	track, ok := loaded.Get("/music/a.mp3")
	require.True(t, ok)
	require.Equal(t, "Song A", track.Metadata.Title)
	require.Equal(t, "rock", track.Metadata.Genres[0].Label)
}

func TestFindDuplicatesGroupsByFingerprint(t *testing.T) {
	s := New()
	s.Put(IndexedTrack{Path: "/a.mp3", Metadata: Metadata{Fingerprint: "fp1"}})
	s.Put(IndexedTrack{Path: "/b.wav", Metadata: Metadata{Fingerprint: "fp1"}})
	s.Put(IndexedTrack{Path: "/c.flac", Metadata: Metadata{Fingerprint: "fp2"}})
	s.Put(IndexedTrack{Path: "/d.mp3", Metadata: Metadata{}})

	groups := s.FindDuplicates()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Tracks, 2)
}
