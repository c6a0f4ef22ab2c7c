// Package tags reads embedded audio tags and falls back to a filename
// heuristic when tags are missing or unreadable.
package tags

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Info is the subset of tag data the enrichment pipeline needs.
type Info struct {
	Title  string
	Artist string
	Album  string
}

// Read parses embedded tags from data (the full file content) and falls
// back to the filename heuristic for the title or artist when the tag
// reader could not supply it; Album has no fallback and stays empty. path
// is used only to derive the filename stem for the fallback;
// tag parsing failures are always recoverable this way.
func Read(path string, data []byte) Info {
	info := Info{}

	if m, err := tag.ReadFrom(bytes.NewReader(data)); err == nil {
		info.Title = strings.TrimSpace(m.Title())
		info.Artist = strings.TrimSpace(m.Artist())
		info.Album = strings.TrimSpace(m.Album())
	}

	if info.Title == "" || info.Artist == "" {
		fbTitle, fbArtist := filenameFallback(path)
		if info.Title == "" {
			info.Title = fbTitle
		}
		if info.Artist == "" {
			info.Artist = fbArtist
		}
	}

	if info.Title == "" {
		info.Title = "Unknown Title"
	}
	if info.Artist == "" {
		info.Artist = "Unknown Artist"
	}
	return info
}

// filenameFallback derives title/artist from the filename stem when tag
// metadata is absent: split the stem by " - "; if that yields exactly two
// parts, treat them as
// "title - artist". Otherwise split by '-': if at least two parts result,
// the last is the artist and everything before (rejoined with '-') is the
// title. Otherwise the whole stem is the title and the artist is unknown.
func filenameFallback(path string) (title, artist string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if parts := strings.Split(stem, " - "); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}

	parts := strings.Split(stem, "-")
	if len(parts) >= 2 {
		artist = strings.TrimSpace(parts[len(parts)-1])
		title = strings.TrimSpace(strings.Join(parts[:len(parts)-1], "-"))
		return title, artist
	}

	return strings.TrimSpace(stem), ""
}
