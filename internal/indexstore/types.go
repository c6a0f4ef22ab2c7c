// Package indexstore persists the track index: a JSON object whose sole
// field "files" maps absolute path to IndexedTrack.
package indexstore

// GenreLabel is one (label, confidence) entry, serialized as a JSON array
// pair to match the external ["label", confidence] contract.
type GenreLabel struct {
	Label      string
	Confidence float32
}

// Metadata is the enrichment result attached to a track.
type Metadata struct {
	Title           string       `json:"title"`
	Artist          string       `json:"artist"`
	Album           string       `json:"album,omitempty"`
	OriginalArtist  string       `json:"original_artist,omitempty"`
	OriginalTitle   string       `json:"original_title,omitempty"`
	DurationS       float64      `json:"duration_s"`
	Fingerprint     string       `json:"fingerprint,omitempty"`
	Genres          []GenreLabel `json:"genres"`
}

// IndexedTrack is the per-path record stored in index.json.
type IndexedTrack struct {
	Path         string   `json:"path"`
	FileSize     int64    `json:"file_size"`
	ModifiedTime int64    `json:"modified_time"`
	ScannedAt    int64    `json:"scanned_at"`
	Metadata     Metadata `json:"metadata"`
}

// FingerprintGroup is a set of tracks sharing an identical fingerprint, a
// duplicate candidate by definition once it has at least 2 members.
type FingerprintGroup struct {
	Fingerprint string
	Tracks      []IndexedTrack
}
