package similarity

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/featurestore"
	"github.com/zfogg/sonicindex/internal/indexstore"
)

func setupLibrary() (*indexstore.Store, *featurestore.Store) {
	idx := indexstore.New()
	feat := featurestore.New()

	idx.Put(indexstore.IndexedTrack{Path: "/q.mp3", Metadata: indexstore.Metadata{Artist: "Q"}})
	feat.Insert("/q.mp3", []float32{0, 0, 0})

	idx.Put(indexstore.IndexedTrack{Path: "/near.mp3", Metadata: indexstore.Metadata{Artist: "X"}})
	feat.Insert("/near.mp3", []float32{1, 0, 0})

	idx.Put(indexstore.IndexedTrack{Path: "/far.mp3", Metadata: indexstore.Metadata{Artist: "Y"}})
	feat.Insert("/far.mp3", []float32{10, 10, 10})

	idx.Put(indexstore.IndexedTrack{Path: "/nofeat.mp3", Metadata: indexstore.Metadata{Artist: "Z"}})

	return idx, feat
}

func TestFindSimilarExcludesQueryAndSortsByDistance(t *testing.T) {
	idx, feat := setupLibrary()
	results := FindSimilar(idx, feat, "/q.mp3", Filters{}, 10)
	require.Len(t, results, 2)
	require.Equal(t, "/near.mp3", results[0].Track.Path)
	require.Equal(t, "/far.mp3", results[1].Track.Path)
}

func TestFindSimilarTruncatesToK(t *testing.T) {
	idx, feat := setupLibrary()
	results := FindSimilar(idx, feat, "/q.mp3", Filters{}, 1)
	require.Len(t, results, 1)
}

func TestFindSimilarSameArtistFilter(t *testing.T) {
	idx, feat := setupLibrary()
	results := FindSimilar(idx, feat, "/q.mp3", Filters{SameArtist: "x"}, 10)
	require.Len(t, results, 1)
	require.Equal(t, "/near.mp3", results[0].Track.Path)
}

func TestFindSimilarQueryWithoutFeatureVectorReturnsEmpty(t *testing.T) {
	idx, feat := setupLibrary()
	results := FindSimilar(idx, feat, "/missing.mp3", Filters{}, 10)
	require.Empty(t, results)
}

func TestFindSimilarMismatchedLengthSortsToTail(t *testing.T) {
	idx, feat := setupLibrary()
	idx.Put(indexstore.IndexedTrack{Path: "/weird.mp3", Metadata: indexstore.Metadata{Artist: "W"}})
	feat.Insert("/weird.mp3", []float32{1, 2})

	results := FindSimilar(idx, feat, "/q.mp3", Filters{}, 10)
	require.Len(t, results, 3)
	require.Equal(t, "/weird.mp3", results[len(results)-1].Track.Path)
}
