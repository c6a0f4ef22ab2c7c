// Package similarity implements the nearest-neighbor query over feature
// vectors: given a query track, find the k closest tracks by Euclidean
// distance in feature space, subject to optional metadata filters.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/zfogg/sonicindex/internal/featurestore"
	"github.com/zfogg/sonicindex/internal/indexstore"
)

// Filters narrows the candidate set before ranking. All set fields are
// combined by conjunction; a zero value means "no constraint".
type Filters struct {
	SameArtist        string
	SameAlbum         string
	ExcludeAlbum      string
	ExcludeFingerprint string
	Genre             string
}

// Result is one ranked neighbor.
type Result struct {
	Track    indexstore.IndexedTrack
	Distance float64
}

// FindSimilar returns up to k nearest neighbors of queryPath by Euclidean
// distance, excluding the query itself. Candidates whose feature vector
// length differs from the query's are pushed to the tail with an
// effectively-infinite distance rather than excluded outright. Results are
// sorted ascending by distance, stable on ties.
func FindSimilar(idx *indexstore.Store, feat *featurestore.Store, queryPath string, filters Filters, k int) []Result {
	queryVec, ok := feat.Get(queryPath)
	if !ok {
		return nil
	}

	var results []Result
	for _, track := range idx.All() {
		if track.Path == queryPath {
			continue
		}
		if !matchesFilters(track, filters) {
			continue
		}
		vec, ok := feat.Get(track.Path)
		if !ok {
			continue
		}
		results = append(results, Result{Track: track, Distance: euclidean(queryVec, vec)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if k < len(results) {
		results = results[:k]
	}
	return results
}

func matchesFilters(track indexstore.IndexedTrack, f Filters) bool {
	if f.SameArtist != "" && !strings.EqualFold(track.Metadata.Artist, f.SameArtist) {
		return false
	}
	if f.SameAlbum != "" && !strings.EqualFold(track.Metadata.Album, f.SameAlbum) {
		return false
	}
	if f.ExcludeAlbum != "" && strings.EqualFold(track.Metadata.Album, f.ExcludeAlbum) {
		return false
	}
	if f.ExcludeFingerprint != "" && track.Metadata.Fingerprint == f.ExcludeFingerprint {
		return false
	}
	if f.Genre != "" {
		found := false
		for _, g := range track.Metadata.Genres {
			if strings.EqualFold(g.Label, f.Genre) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func euclidean(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
