package indexstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/zfogg/sonicindex/internal/apierr"
)

// document is the on-disk shape of index.json.
type document struct {
	Files map[string]IndexedTrack `json:"files"`
}

// Store is the in-memory Index Store, guarded for the Coordinator's
// single-writer merge discipline. Reads are safe from the Evaluator and
// the HTTP adapter concurrently with a scan; writes only ever happen from
// the Coordinator's merge step.
type Store struct {
	mu    sync.RWMutex
	files map[string]IndexedTrack
}

// New returns an empty Store.
func New() *Store {
	return &Store{files: make(map[string]IndexedTrack)}
}

// Load reads index.json from dir. A missing file yields an empty store, not
// an error. A present-but-unparseable file fails with Corrupt.
func Load(dir string) (*Store, error) {
	path := filepath.Join(dir, "index.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.Io, path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apierr.Wrap(apierr.Corrupt, path, err)
	}
	if doc.Files == nil {
		doc.Files = make(map[string]IndexedTrack)
	}
	return &Store{files: doc.Files}, nil
}

// Save pretty-prints the store to index.json under dir, creating the
// directory if necessary.
func (s *Store) Save(dir string) error {
	s.mu.RLock()
	doc := document{Files: s.files}
	data, err := json.MarshalIndent(doc, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return apierr.Wrap(apierr.Io, dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apierr.Wrap(apierr.Io, dir, err)
	}
	path := filepath.Join(dir, "index.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apierr.Wrap(apierr.Io, path, err)
	}
	return nil
}

// Get returns the track at path and whether it was present.
func (s *Store) Get(path string) (IndexedTrack, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.files[path]
	return t, ok
}

// Put inserts or replaces the track at path.
func (s *Store) Put(track IndexedTrack) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[track.Path] = track
}

// Len returns the number of tracks currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// All returns a snapshot slice of every stored track. The slice is a copy;
// mutating it does not affect the store.
func (s *Store) All() []IndexedTrack {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]IndexedTrack, 0, len(s.files))
	for _, t := range s.files {
		out = append(out, t)
	}
	return out
}

// FindDuplicates groups tracks by metadata.fingerprint, excluding tracks
// with an absent fingerprint, and returns only groups with at least 2
// members. Group order and within-group order are unspecified.
func (s *Store) FindDuplicates() []FingerprintGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byFP := make(map[string][]IndexedTrack)
	for _, t := range s.files {
		if t.Metadata.Fingerprint == "" {
			continue
		}
		byFP[t.Metadata.Fingerprint] = append(byFP[t.Metadata.Fingerprint], t)
	}

	var groups []FingerprintGroup
	for fp, tracks := range byFP {
		if len(tracks) >= 2 {
			groups = append(groups, FingerprintGroup{Fingerprint: fp, Tracks: tracks})
		}
	}
	return groups
}
