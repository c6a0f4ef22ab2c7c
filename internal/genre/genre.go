// Package genre implements the optional two-stage neural genre classifier:
// resample -> log-mel spectrogram -> patching -> batched embedding model ->
// mean-pool + L2 normalize -> multi-label classifier -> top-k.
package genre

import (
	"math"
	"os"
	"path/filepath"
	"sort"

	ort "github.com/yalue/onnxruntime_go"
	"github.com/zfogg/sonicindex/internal/apierr"
)

const (
	batchSize = 64

	embeddingModelFile  = "discogs-effnet-bsdynamic-1.onnx"
	classifierModelFile = "mtg_jamendo_genre-discogs-effnet.onnx"

	embeddingDim = 1280 // EffNet-Discogs embedding width
)

// Label is one (label, confidence) entry of a classification result, in
// the confidence-descending order the Scan Coordinator persists.
type Label struct {
	Name       string
	Confidence float32
}

// Classifier holds one worker's lazily-constructed ONNX sessions and
// resampler. It must not be shared across goroutines: each worker builds
// its own and reuses it across files, matching the thread-local session
// model the reference implementation uses to avoid oversubscribing the
// inference runtime's own thread pool.
type Classifier struct {
	modelDir   string
	resampler  *Resampler
	resamplerS int

	embedSession  *ort.DynamicAdvancedSession
	classifySession *ort.DynamicAdvancedSession
	initialized   bool
	available     bool
}

// NewClassifier builds an uninitialized Classifier bound to modelDir.
// Session construction is deferred to the first Classify call.
func NewClassifier(modelDir string) *Classifier {
	return &Classifier{modelDir: modelDir}
}

// ModelDir returns the model directory this Classifier was constructed
// with, so callers needing a per-worker instance can build one bound to
// the same path.
func (c *Classifier) ModelDir() string {
	return c.modelDir
}

// Available reports whether both model files exist under the configured
// model directory, without constructing any sessions.
func (c *Classifier) Available() bool {
	embedPath := filepath.Join(c.modelDir, embeddingModelFile)
	classifyPath := filepath.Join(c.modelDir, classifierModelFile)
	if _, err := os.Stat(embedPath); err != nil {
		return false
	}
	if _, err := os.Stat(classifyPath); err != nil {
		return false
	}
	return true
}

func (c *Classifier) ensureInit() error {
	if c.initialized {
		if !c.available {
			return apierr.New(apierr.ClassifierInit, c.modelDir, "genre models unavailable")
		}
		return nil
	}
	c.initialized = true

	if !c.Available() {
		c.available = false
		return apierr.New(apierr.ClassifierInit, c.modelDir, "genre model files not found")
	}

	if err := ort.InitializeEnvironment(); err != nil {
		c.available = false
		return apierr.Wrap(apierr.ClassifierInit, c.modelDir, err)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		c.available = false
		return apierr.Wrap(apierr.ClassifierInit, c.modelDir, err)
	}
	defer opts.Destroy()
	_ = opts.SetIntraOpNumThreads(1)

	embedPath := filepath.Join(c.modelDir, embeddingModelFile)
	embedSession, err := ort.NewDynamicAdvancedSession(embedPath,
		[]string{"melspectrogram"}, []string{"embeddings"}, opts)
	if err != nil {
		c.available = false
		return apierr.Wrap(apierr.ClassifierInit, embedPath, err)
	}

	classifyPath := filepath.Join(c.modelDir, classifierModelFile)
	classifySession, err := ort.NewDynamicAdvancedSession(classifyPath,
		[]string{"embeddings"}, []string{"activations"}, opts)
	if err != nil {
		embedSession.Destroy()
		c.available = false
		return apierr.Wrap(apierr.ClassifierInit, classifyPath, err)
	}

	c.embedSession = embedSession
	c.classifySession = classifySession
	c.available = true
	return nil
}

// Close releases the classifier's ONNX sessions.
func (c *Classifier) Close() {
	if c.embedSession != nil {
		c.embedSession.Destroy()
	}
	if c.classifySession != nil {
		c.classifySession.Destroy()
	}
}

// Classify runs the full pipeline over a mono stream at srcSampleRate and
// returns the top-k labels by confidence descending. It returns
// ClassifierInit if the model files are missing (a non-fatal, expected
// condition) and ClassifierRun for any inference-time failure.
func (c *Classifier) Classify(mono []float32, srcSampleRate, topK int) ([]Label, error) {
	if err := c.ensureInit(); err != nil {
		return nil, err
	}

	if c.resampler == nil || c.resamplerS != srcSampleRate {
		c.resampler = NewResampler(srcSampleRate)
		c.resamplerS = srcSampleRate
	}
	resampled := c.resampler.Process(mono)

	melSpec := logMelSpectrogram(resampled)
	patchList := patches(melSpec)
	if len(patchList) == 0 {
		return nil, nil
	}

	pooled, err := c.embed(patchList)
	if err != nil {
		return nil, apierr.Wrap(apierr.ClassifierRun, c.modelDir, err)
	}

	activations, err := c.classify(pooled)
	if err != nil {
		return nil, apierr.Wrap(apierr.ClassifierRun, c.modelDir, err)
	}

	return topLabels(activations, topK), nil
}

// embed runs batched embedding inference over patches (each a flattened
// 128x96 slice), zero-padding a short trailing batch, then mean-pools and
// L2-normalizes across all real (non-padding) patches.
func (c *Classifier) embed(patchList [][]float32) ([]float32, error) {
	pooled := make([]float32, embeddingDim)
	total := 0

	for start := 0; start < len(patchList); start += batchSize {
		end := start + batchSize
		if end > len(patchList) {
			end = len(patchList)
		}
		n := end - start

		flat := make([]float32, batchSize*patchFrames*nMels)
		for i := 0; i < n; i++ {
			copy(flat[i*patchFrames*nMels:], patchList[start+i])
		}

		inputTensor, err := ort.NewTensor(ort.NewShape(batchSize, patchFrames, nMels), flat)
		if err != nil {
			return nil, err
		}

		outputs := []ort.Value{nil}
		if err := c.embedSession.Run([]ort.Value{inputTensor}, outputs); err != nil {
			inputTensor.Destroy()
			return nil, err
		}
		inputTensor.Destroy()

		embTensor, ok := outputs[0].(*ort.Tensor[float32])
		if !ok {
			return nil, apierr.New(apierr.ClassifierRun, c.modelDir, "unexpected embedding output type")
		}
		data := embTensor.GetData()
		dim := len(data) / batchSize
		for i := 0; i < n; i++ {
			for j := 0; j < dim && j < embeddingDim; j++ {
				pooled[j] += data[i*dim+j]
			}
		}
		embTensor.Destroy()
		total += n
	}

	if total == 0 {
		return pooled, nil
	}
	for i := range pooled {
		pooled[i] /= float32(total)
	}

	var norm float64
	for _, v := range pooled {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm >= 1e-8 {
		for i := range pooled {
			pooled[i] = float32(float64(pooled[i]) / norm)
		}
	}
	return pooled, nil
}

func (c *Classifier) classify(pooled []float32) ([]float32, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(pooled))), pooled)
	if err != nil {
		return nil, err
	}
	defer inputTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := c.classifySession.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, err
	}

	actTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, apierr.New(apierr.ClassifierRun, c.modelDir, "unexpected activations output type")
	}
	defer actTensor.Destroy()

	activations := make([]float32, len(actTensor.GetData()))
	copy(activations, actTensor.GetData())
	return activations, nil
}

func topLabels(activations []float32, k int) []Label {
	n := NumLabels
	if len(activations) < n {
		n = len(activations)
	}
	labels := make([]Label, n)
	for i := 0; i < n; i++ {
		labels[i] = Label{Name: Labels[i], Confidence: activations[i]}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Confidence > labels[j].Confidence
	})
	if k < len(labels) {
		labels = labels[:k]
	}
	return labels
}
