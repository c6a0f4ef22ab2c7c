// Package coordinator orchestrates an incremental library scan: change
// detection against the persisted stores, parallel per-file enrichment
// across a bounded worker pool, and periodic checkpointed merges.
package coordinator

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/zfogg/sonicindex/internal/apierr"
	"github.com/zfogg/sonicindex/internal/features"
	"github.com/zfogg/sonicindex/internal/featurestore"
	"github.com/zfogg/sonicindex/internal/genre"
	"github.com/zfogg/sonicindex/internal/indexstore"
	"github.com/zfogg/sonicindex/internal/logger"
	"github.com/zfogg/sonicindex/internal/lookupcache"
	"github.com/zfogg/sonicindex/internal/metrics"
	"github.com/zfogg/sonicindex/internal/onlinelookup"
	"github.com/zfogg/sonicindex/internal/telemetry"
	"github.com/zfogg/sonicindex/internal/walker"
)

var scanEvents = telemetry.NewScanEvents()

const (
	chunkSize           = 50
	checkpointInterval  = 200
	maxWorkers          = 4
	featureSampleRate   = 22050
	defaultGenreTopK    = 5
)

// Coordinator owns the in-memory Index Store and Feature Store and runs at
// most one scan or classify at a time. The HTTP adapter and the Evaluator
// read the stores directly; only the Coordinator's merge step writes them.
type Coordinator struct {
	mu       sync.Mutex
	active   bool
	progress *ScanProgress

	indexDir string
	Index    *indexstore.Store
	Features *featurestore.Store

	Cache *lookupcache.Cache
	// Classifier is never handed to a worker goroutine and never has
	// Classify called on it: it exists only to record whether neural genre
	// classification is enabled and which model directory to use.
	// dispatchChunk reads its ModelDir() and builds one fresh
	// *genre.Classifier per worker goroutine for the actual inference.
	Classifier *genre.Classifier
}

// New builds a Coordinator bound to indexDir, loading its stores
// immediately. Load failures degrade to empty stores with a warning, per
// the scan protocol's first step.
func New(indexDir string) *Coordinator {
	idx, err := indexstore.Load(indexDir)
	if err != nil {
		logger.WarnWithFields("index store failed to load, starting empty", err)
		idx = indexstore.New()
	}
	feat, err := featurestore.Load(indexDir)
	if err != nil {
		logger.WarnWithFields("feature store failed to load, starting empty", err)
		feat = featurestore.New()
	}
	return &Coordinator{
		indexDir: indexDir,
		Index:    idx,
		Features: feat,
		progress: &ScanProgress{},
	}
}

// Progress returns an immutable snapshot of the current (or most recent)
// run's state.
func (c *Coordinator) Progress() Snapshot {
	return c.progress.snapshot()
}

// Busy reports whether a scan or classify run is currently active. Callers
// that dispatch StartScan/StartClassify in a goroutine can use this for a
// fast synchronous Busy response; the authoritative check still happens
// inside StartScan/StartClassify itself.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetClassifier enables neural genre classification using classifier's
// model directory. A nil classifier (the default) skips it during scan.
// classifier itself is never run; it only carries the model directory
// worker goroutines use to build their own instances.
func (c *Coordinator) SetClassifier(classifier *genre.Classifier) {
	c.Classifier = classifier
}

// SetCache attaches an online-lookup result cache.
func (c *Coordinator) SetCache(cache *lookupcache.Cache) {
	c.Cache = cache
}

// tryAcquire marks a run active, returning apierr.BusyErr() if one already
// is. This is the sole admission check for start_scan/start_classify.
func (c *Coordinator) tryAcquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return apierr.BusyErr()
	}
	c.active = true
	return nil
}

func (c *Coordinator) release() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}

func workerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}

// StartScan runs the full scan protocol synchronously: load (already done
// at construction), enumerate, diff, process, merge, finalize. A caller
// that wants this in the background should invoke it from its own
// goroutine; the Coordinator itself does not self-dispatch, matching the
// rule that it exposes only start/observe with no cancellation.
func (c *Coordinator) StartScan(inputDir string, offline bool, clientID string) error {
	if err := c.tryAcquire(); err != nil {
		return err
	}
	defer c.release()
	defer c.progress.finish()

	m := metrics.Get()
	m.ScanActive.Set(1)
	defer m.ScanActive.Set(0)
	scanStart := time.Now()
	defer func() { m.ScanDuration.Observe(time.Since(scanStart).Seconds()) }()

	ctx, span := scanEvents.TraceScanRun(context.Background(), inputDir, offline)
	defer span.End()

	monitorCtx, cancelMonitor := context.WithCancel(ctx)
	defer cancelMonitor()
	go runResourceMonitor(monitorCtx, c.progress, c.indexDir)

	paths, err := walker.Enumerate(inputDir)
	if err != nil {
		return apierr.Wrap(apierr.Io, inputDir, err)
	}

	jobs, skipped := c.diffScan(paths)
	c.progress.start(len(jobs) + skipped)
	c.progress.addSkipped(skipped)

	params := runParams{
		offline:   offline,
		cache:     c.Cache,
		genreTopK: defaultGenreTopK,
	}
	if !offline && clientID != "" {
		params.lookup = onlinelookup.New(clientID)
	} else {
		params.lookup = onlinelookup.Disabled{}
	}

	classifierModelDir := ""
	if c.Classifier != nil {
		classifierModelDir = c.Classifier.ModelDir()
	}

	c.runChunked(jobs, classifierModelDir, func(job fileJob, extractor *features.Extractor, classifier *genre.Classifier) fileResult {
		return processFile(ctx, job, params, extractor, classifier)
	})

	return c.finalize()
}

// StartClassify runs the classify-only protocol: every known track lacking
// a non-empty genres field is re-decoded and classified.
func (c *Coordinator) StartClassify(modelDir string) error {
	if err := c.tryAcquire(); err != nil {
		return err
	}
	defer c.release()
	defer c.progress.finish()

	m := metrics.Get()
	m.ScanActive.Set(1)
	defer m.ScanActive.Set(0)

	ctx, span := scanEvents.TraceClassifyRun(context.Background(), modelDir)
	defer span.End()

	if c.Classifier == nil || !c.Classifier.Available() {
		c.Classifier = genre.NewClassifier(modelDir)
	}

	var pending []indexstore.IndexedTrack
	for _, t := range c.Index.All() {
		if len(t.Metadata.Genres) == 0 {
			pending = append(pending, t)
		}
	}
	c.progress.start(len(pending))

	params := runParams{genreTopK: defaultGenreTopK}

	jobs := make([]fileJob, len(pending))
	for i, t := range pending {
		jobs[i] = fileJob{path: t.Path, size: t.FileSize, modTime: t.ModifiedTime}
	}
	tracksByPath := make(map[string]indexstore.IndexedTrack, len(pending))
	for _, t := range pending {
		tracksByPath[t.Path] = t
	}

	c.runChunked(jobs, modelDir, func(job fileJob, extractor *features.Extractor, classifier *genre.Classifier) fileResult {
		return processClassifyOnly(ctx, tracksByPath[job.path], params, classifier)
	})

	return c.finalize()
}

// diffScan returns the work list (files requiring reprocessing) and a
// pre-count of files that can be skipped because their stored record still
// matches (size, mtime) and a feature vector is already present.
func (c *Coordinator) diffScan(paths []string) (jobs []fileJob, skipped int) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		size := info.Size()
		modTime := info.ModTime().Unix()

		existing, known := c.Index.Get(path)
		_, hasVector := c.Features.Get(path)

		if known && hasVector && existing.FileSize == size && existing.ModifiedTime == modTime {
			skipped++
			continue
		}
		jobs = append(jobs, fileJob{path: path, size: size, modTime: modTime})
	}
	return jobs, skipped
}

// runChunked dispatches jobs to a worker pool in chunks of chunkSize,
// merging each chunk's results single-threadedly before moving on to the
// next. Every checkpointInterval successfully merged files, both stores
// are persisted. classifierModelDir, when non-empty, is passed to
// dispatchChunk so each worker goroutine builds its own *genre.Classifier
// instead of sharing one across the pool.
func (c *Coordinator) runChunked(jobs []fileJob, classifierModelDir string, run func(fileJob, *features.Extractor, *genre.Classifier) fileResult) {
	mergedSinceCheckpoint := 0

	for start := 0; start < len(jobs); start += chunkSize {
		end := start + chunkSize
		if end > len(jobs) {
			end = len(jobs)
		}
		chunk := jobs[start:end]

		results := c.dispatchChunk(chunk, classifierModelDir, run)

		m := metrics.Get()
		for _, r := range results {
			ok := r.err == nil
			if ok {
				c.Index.Put(r.track)
				if r.hasVec {
					c.Features.Insert(r.path, r.vector)
				}
				mergedSinceCheckpoint++
				m.FilesProcessedTotal.WithLabelValues("merge").Inc()
			} else {
				logger.WarnWithFields("file processing failed: "+r.path, r.err)
				m.FilesFailedTotal.WithLabelValues("merge").Inc()
			}
			c.progress.recordResult(r.path, ok)

			if mergedSinceCheckpoint >= checkpointInterval {
				c.checkpoint()
				mergedSinceCheckpoint = 0
			}
		}
	}
}

// dispatchChunk runs chunk across workerCount() goroutines. Each goroutine
// constructs its own *features.Extractor and, when classifierModelDir is
// set, its own *genre.Classifier — neither the gonum FFT plan nor the ONNX
// sessions are safe to share across concurrently-running workers, so every
// goroutine gets a private instance that it reuses across the jobs it
// pulls from jobCh.
func (c *Coordinator) dispatchChunk(chunk []fileJob, classifierModelDir string, run func(fileJob, *features.Extractor, *genre.Classifier) fileResult) []fileResult {
	n := workerCount()
	jobCh := make(chan fileJob, len(chunk))
	resultCh := make(chan fileResult, len(chunk))

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			extractor := features.NewExtractor(featureSampleRate)
			var classifier *genre.Classifier
			if classifierModelDir != "" {
				classifier = genre.NewClassifier(classifierModelDir)
			}
			for job := range jobCh {
				resultCh <- run(job, extractor, classifier)
			}
		}()
	}

	for _, job := range chunk {
		jobCh <- job
	}
	close(jobCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]fileResult, 0, len(chunk))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}

func (c *Coordinator) checkpoint() {
	if err := c.Index.Save(c.indexDir); err != nil {
		logger.WarnWithFields("checkpoint index save failed", err)
	}
	if err := c.Features.Save(c.indexDir); err != nil {
		logger.WarnWithFields("checkpoint feature save failed", err)
	}
	logger.InfoWithFields("checkpoint saved",
		logger.WithStage("checkpoint"),
		logger.WithCount("files_processed", c.progress.snapshot().FilesProcessed),
	)
	metrics.Get().CheckpointsTotal.Inc()
}

func (c *Coordinator) finalize() error {
	if err := c.Index.Save(c.indexDir); err != nil {
		return err
	}
	return c.Features.Save(c.indexDir)
}
