// Package walker enumerates candidate audio files under a root directory.
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions is the set of lowercased file extensions (without the leading
// dot) the walker considers audio candidates.
var Extensions = map[string]bool{
	"mp3":  true,
	"flac": true,
	"wav":  true,
	"m4a":  true,
	"ogg":  true,
}

// Enumerate recursively visits every file under root and returns the
// absolute paths of files whose lowercased extension is in Extensions.
// Unreadable entries are silently skipped so a single bad directory entry
// cannot abort a scan. Symlink loops are tolerated because filepath.WalkDir
// does not follow symbolic links, so a linked directory is never descended.
func Enumerate(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: skip it, keep walking siblings.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if isCandidate(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

func isCandidate(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	ext = strings.TrimPrefix(ext, ".")
	return Extensions[ext]
}
