package tags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilenameFallbackSpaceDashSpace(t *testing.T) {
	title, artist := filenameFallback("/music/Midnight City - M83.mp3")
	require.Equal(t, "Midnight City", title)
	require.Equal(t, "M83", artist)
}

func TestFilenameFallbackPlainDash(t *testing.T) {
	title, artist := filenameFallback("/music/01-my-song-artist.mp3")
	require.Equal(t, "01-my-song", title)
	require.Equal(t, "artist", artist)
}

func TestFilenameFallbackNoDash(t *testing.T) {
	title, artist := filenameFallback("/music/justtitle.mp3")
	require.Equal(t, "justtitle", title)
	require.Empty(t, artist)
}

func TestReadFallsBackWhenNoTagsParse(t *testing.T) {
	info := Read("/music/Song Name - Some Artist.mp3", []byte("not a real audio file"))
	require.Equal(t, "Song Name", info.Title)
	require.Equal(t, "Some Artist", info.Artist)
}

func TestReadUnknownDefaultsWhenNoHeuristicMatch(t *testing.T) {
	info := Read("/music/track1.mp3", []byte("garbage"))
	require.Equal(t, "track1", info.Title)
	require.Equal(t, "Unknown Artist", info.Artist)
}
