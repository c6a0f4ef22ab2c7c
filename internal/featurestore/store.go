// Package featurestore persists the feature vector index: a compact
// binary encoding of a map from absolute path to float-vector.
package featurestore

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/zfogg/sonicindex/internal/apierr"
)

// magic identifies the analysis.bin format; version allows a future,
// backward-incompatible encoding to be detected rather than silently
// misparsed.
const (
	magic   = "SNAN"
	version = 1
)

// Store is the in-memory Feature Store, guarded the same way the Index
// Store is: single-writer from the Coordinator's merge step, concurrently
// readable by the Evaluator.
type Store struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// New returns an empty Store.
func New() *Store {
	return &Store{vectors: make(map[string][]float32)}
}

// Load reads analysis.bin from dir. A missing file yields an empty store.
func Load(dir string) (*Store, error) {
	path := filepath.Join(dir, "analysis.bin")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.Io, path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	vectors, err := decode(r)
	if err != nil {
		return nil, apierr.Wrap(apierr.Corrupt, path, err)
	}
	return &Store{vectors: vectors}, nil
}

// Save writes analysis.bin under dir, creating the directory if needed.
func (s *Store) Save(dir string) error {
	s.mu.RLock()
	vectors := s.vectors
	s.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apierr.Wrap(apierr.Io, dir, err)
	}
	path := filepath.Join(dir, "analysis.bin")
	f, err := os.Create(path)
	if err != nil {
		return apierr.Wrap(apierr.Io, path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := encode(w, vectors); err != nil {
		return apierr.Wrap(apierr.Io, path, err)
	}
	return w.Flush()
}

// Insert stores v at path, last-write-wins.
func (s *Store) Insert(path string, v []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors[path] = v
}

// Remove deletes path from the store, if present.
func (s *Store) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vectors, path)
}

// Get returns the vector at path and whether it was present.
func (s *Store) Get(path string) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vectors[path]
	return v, ok
}

// Len returns the number of stored vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// All returns a snapshot copy of the full path -> vector map.
func (s *Store) All() map[string][]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]float32, len(s.vectors))
	for k, v := range s.vectors {
		cp := make([]float32, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func encode(w io.Writer, vectors map[string][]float32) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(version)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return err
	}
	for path, vec := range vectors {
		pathBytes := []byte(path)
		if err := binary.Write(w, binary.LittleEndian, uint32(len(pathBytes))); err != nil {
			return err
		}
		if _, err := w.Write(pathBytes); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(vec))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			return err
		}
	}
	return nil
}

func decode(r io.Reader) (map[string][]float32, error) {
	var gotMagic [4]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, err
	}
	if string(gotMagic[:]) != magic {
		return nil, errBadMagic
	}

	var ver uint32
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		return nil, err
	}
	if ver != version {
		return nil, errUnsupportedVersion
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	vectors := make(map[string][]float32, count)
	for i := uint32(0); i < count; i++ {
		var pathLen uint32
		if err := binary.Read(r, binary.LittleEndian, &pathLen); err != nil {
			return nil, err
		}
		pathBytes := make([]byte, pathLen)
		if _, err := io.ReadFull(r, pathBytes); err != nil {
			return nil, err
		}

		var vecLen uint32
		if err := binary.Read(r, binary.LittleEndian, &vecLen); err != nil {
			return nil, err
		}
		vec := make([]float32, vecLen)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, err
		}
		vectors[string(pathBytes)] = vec
	}
	return vectors, nil
}
