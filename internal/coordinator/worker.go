package coordinator

import (
	"context"
	"os"
	"time"

	"github.com/zfogg/sonicindex/internal/apierr"
	"github.com/zfogg/sonicindex/internal/decode"
	"github.com/zfogg/sonicindex/internal/features"
	"github.com/zfogg/sonicindex/internal/fingerprint"
	"github.com/zfogg/sonicindex/internal/genre"
	"github.com/zfogg/sonicindex/internal/indexstore"
	"github.com/zfogg/sonicindex/internal/logger"
	"github.com/zfogg/sonicindex/internal/lookupcache"
	"github.com/zfogg/sonicindex/internal/metrics"
	"github.com/zfogg/sonicindex/internal/onlinelookup"
	"github.com/zfogg/sonicindex/internal/tags"
)

// runParams carries the scan-wide configuration each worker needs, shared
// read-only across the pool. It never holds a *genre.Classifier: classifier
// sessions are not safe for concurrent use, so each worker goroutine builds
// and keeps its own (see dispatchChunk), passed into processFile and
// processClassifyOnly as an explicit argument instead.
type runParams struct {
	offline   bool
	lookup    onlinelookup.Lookup
	cache     *lookupcache.Cache
	genreTopK int
}

// fileJob is one unit of work dispatched to the pool.
type fileJob struct {
	path     string
	size     int64
	modTime  int64
}

// fileResult is what a worker hands back to the single-threaded merge step.
type fileResult struct {
	path    string
	track   indexstore.IndexedTrack
	vector  features.FeatureVector
	hasVec  bool
	err     error
}

// processFile runs the full single-decode enrichment pipeline against one
// file: decode, tag read, fingerprint, feature extraction, optional online
// lookup, optional neural genre classification. classifier is this
// worker's own instance; it must never be shared with another goroutine.
func processFile(ctx context.Context, job fileJob, p runParams, extractor *features.Extractor, classifier *genre.Classifier) fileResult {
	start := time.Now()
	defer func() { metrics.Get().FileProcessDuration.Observe(time.Since(start).Seconds()) }()

	ctx, span := scanEvents.TraceFileEnrich(ctx, job.path)
	defer span.End()

	data, err := os.ReadFile(job.path)
	if err != nil {
		return fileResult{path: job.path, err: apierr.Wrap(apierr.Io, job.path, err)}
	}

	audio, err := decode.DecodeBytes(job.path, data)
	if err != nil {
		return fileResult{path: job.path, err: err}
	}

	info := tags.Read(job.path, data)
	mono := audio.ToMono22050()

	track := indexstore.IndexedTrack{
		Path:         job.path,
		FileSize:     job.size,
		ModifiedTime: job.modTime,
		ScannedAt:    time.Now().Unix(),
		Metadata: indexstore.Metadata{
			Title:     info.Title,
			Artist:    info.Artist,
			Album:     info.Album,
			DurationS: audio.DurationS,
		},
	}

	if fp, err := fingerprint.Fingerprint(audio.SamplesI16, audio.SampleRate, audio.Channels); err == nil {
		track.Metadata.Fingerprint = fp
	} else {
		logger.WarnWithFields("fingerprinting failed", err)
	}

	result := fileResult{path: job.path, track: track}

	vec, err := extractor.Analyze(mono)
	if err == nil {
		result.vector = vec
		result.hasVec = true
	} else {
		logger.WarnWithFields("feature extraction failed", err)
	}

	if !p.offline && p.lookup != nil && track.Metadata.Fingerprint != "" {
		enrichFromOnlineLookup(ctx, &track, p)
	}

	if classifier != nil && classifier.Available() {
		if labels, err := classifier.Classify(mono, featureSampleRate, p.genreTopK); err == nil {
			track.Metadata.Genres = toGenreLabels(labels)
		} else {
			logger.WarnWithFields("genre classification failed", err)
		}
	}

	result.track = track
	return result
}

// processClassifyOnly re-decodes path for its mono stream and runs only the
// genre classifier, leaving every other field of the existing track intact.
// classifier is this worker's own instance; it must never be shared with
// another goroutine.
func processClassifyOnly(ctx context.Context, track indexstore.IndexedTrack, p runParams, classifier *genre.Classifier) fileResult {
	data, err := os.ReadFile(track.Path)
	if err != nil {
		return fileResult{path: track.Path, track: track, err: apierr.Wrap(apierr.Io, track.Path, err)}
	}
	audio, err := decode.DecodeBytes(track.Path, data)
	if err != nil {
		return fileResult{path: track.Path, track: track, err: err}
	}
	mono := audio.ToMono22050()

	if classifier != nil && classifier.Available() {
		labels, err := classifier.Classify(mono, featureSampleRate, p.genreTopK)
		if err != nil {
			return fileResult{path: track.Path, track: track, err: err}
		}
		track.Metadata.Genres = toGenreLabels(labels)
	}
	return fileResult{path: track.Path, track: track}
}

func enrichFromOnlineLookup(ctx context.Context, track *indexstore.IndexedTrack, p runParams) {
	fp := track.Metadata.Fingerprint

	ctx, span := scanEvents.TraceOnlineLookup(ctx, fp)
	defer span.End()

	if p.cache != nil {
		if delta, ok := p.cache.Get(ctx, fp); ok {
			applyDelta(track, delta)
			return
		}
	}

	delta, err := p.lookup.Lookup(ctx, track.Metadata.DurationS, fp)
	if err != nil {
		outcome := "error"
		if apierr.IsKind(err, apierr.RateLimited) {
			outcome = "rate_limited"
		} else if apierr.IsKind(err, apierr.Network) {
			outcome = "network_error"
		} else {
			logger.WarnWithFields("online lookup failed", err)
		}
		metrics.Get().OnlineLookupsTotal.WithLabelValues(outcome).Inc()
		return
	}
	metrics.Get().OnlineLookupsTotal.WithLabelValues("matched").Inc()

	if p.cache != nil {
		p.cache.Put(ctx, fp, delta)
	}
	applyDelta(track, delta)
}

func applyDelta(track *indexstore.IndexedTrack, delta *onlinelookup.MetadataDelta) {
	if delta == nil {
		return
	}
	if delta.Title != "" {
		track.Metadata.Title = delta.Title
	}
	if delta.Artist != "" {
		track.Metadata.Artist = delta.Artist
	}
	track.Metadata.OriginalArtist = delta.OriginalArtist
	track.Metadata.OriginalTitle = delta.OriginalTitle
}

func toGenreLabels(labels []genre.Label) []indexstore.GenreLabel {
	out := make([]indexstore.GenreLabel, len(labels))
	for i, l := range labels {
		out[i] = indexstore.GenreLabel{Label: l.Name, Confidence: l.Confidence}
	}
	return out
}
