// Package features extracts a fixed-length timbre/rhythm FeatureVector
// from a mono/22050 Hz float stream, suitable for Euclidean similarity
// search. The extractor is stateless between calls; each call to Analyze
// resets its frame accumulators.
package features

import (
	"math"

	"github.com/zfogg/sonicindex/internal/apierr"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	fftSize       = 2048
	hopSize       = 1024
	numMFCC       = 13
	numMelFilters = 26

	// Dimension is the fixed length of every FeatureVector this extractor
	// produces: 13 MFCC means + 13 MFCC standard deviations + spectral
	// centroid + tempo estimate.
	Dimension = numMFCC*2 + 2
)

// FeatureVector is a fixed-length summary of timbral and rhythmic content.
type FeatureVector []float32

// Extractor holds the reusable window, filterbank, and FFT plan for a
// given sample rate. One Extractor is safe to reuse across tracks as long
// as the sample rate does not change; it holds no per-track state between
// Analyze calls.
type Extractor struct {
	fft        *fourier.FFT
	window     []float64
	melFilters [][]float64
	sampleRate int
}

// NewExtractor builds an Extractor tuned to sampleRate (normally 22050, the
// Decoder's mono output rate).
func NewExtractor(sampleRate int) *Extractor {
	window := make([]float64, fftSize)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
	}
	return &Extractor{
		fft:        fourier.NewFFT(fftSize),
		window:     window,
		melFilters: createMelFilterbank(numMelFilters, fftSize, sampleRate),
		sampleRate: sampleRate,
	}
}

// Analyze computes a FeatureVector from a mono float32 stream. Failures
// are non-fatal to the overall enrichment: the caller should record the
// track without a feature vector rather than abort the scan.
func (e *Extractor) Analyze(mono []float32) (FeatureVector, error) {
	numFrames := (len(mono)-fftSize)/hopSize + 1
	if numFrames < 1 {
		return nil, apierr.New(apierr.Decode, "", "insufficient samples for feature extraction")
	}

	mfccFrames := make([][]float64, 0, numFrames)
	centroids := make([]float64, 0, numFrames)
	var onsetStrengths []float64
	prevSpectrum := make([]float64, fftSize/2+1)

	windowed := make([]float64, fftSize)
	frame := make([]float64, fftSize)
	for start := 0; start+fftSize <= len(mono); start += hopSize {
		for i := 0; i < fftSize; i++ {
			frame[i] = float64(mono[start+i])
			windowed[i] = frame[i] * e.window[i]
		}
		coeffs := e.fft.Coefficients(nil, windowed)
		spectrum := make([]float64, len(coeffs))
		for i, c := range coeffs {
			spectrum[i] = math.Hypot(real(c), imag(c))
		}

		mfccFrames = append(mfccFrames, e.computeMFCC(spectrum))
		centroids = append(centroids, spectralCentroid(spectrum, e.sampleRate, fftSize))

		flux := spectralFlux(spectrum, prevSpectrum)
		if flux > 0 {
			onsetStrengths = append(onsetStrengths, flux)
		}
		copy(prevSpectrum, spectrum)
	}

	if len(mfccFrames) == 0 {
		return nil, apierr.New(apierr.Decode, "", "no frames produced during feature extraction")
	}

	mean, stddev := meanAndStdDev(mfccFrames)
	centroidMean := mean1D(centroids)
	tempo := estimateTempo(onsetStrengths, e.sampleRate, hopSize)

	vec := make(FeatureVector, 0, Dimension)
	for _, v := range mean {
		vec = append(vec, float32(v))
	}
	for _, v := range stddev {
		vec = append(vec, float32(v))
	}
	vec = append(vec, float32(centroidMean), float32(tempo))
	return vec, nil
}

func (e *Extractor) computeMFCC(spectrum []float64) []float64 {
	melEnergies := make([]float64, numMelFilters)
	for i := 0; i < numMelFilters; i++ {
		filter := e.melFilters[i]
		for j := 0; j < len(spectrum) && j < len(filter); j++ {
			melEnergies[i] += spectrum[j] * spectrum[j] * filter[j]
		}
		if melEnergies[i] < 1e-10 {
			melEnergies[i] = 1e-10
		}
		melEnergies[i] = math.Log(melEnergies[i])
	}

	mfcc := make([]float64, numMFCC)
	for i := 0; i < numMFCC; i++ {
		for j := 0; j < numMelFilters; j++ {
			mfcc[i] += melEnergies[j] * math.Cos(math.Pi*float64(i)*(float64(j)+0.5)/float64(numMelFilters))
		}
	}
	return mfcc
}

func spectralCentroid(spectrum []float64, sampleRate, fftSize int) float64 {
	var weighted, total float64
	for i, mag := range spectrum {
		freq := float64(i) * float64(sampleRate) / float64(fftSize)
		weighted += freq * mag
		total += mag
	}
	if total < 1e-12 {
		return 0
	}
	return weighted / total
}

func spectralFlux(spectrum, prev []float64) float64 {
	var flux float64
	for i := range spectrum {
		d := spectrum[i] - prev[i]
		if d > 0 {
			flux += d
		}
	}
	return flux
}

func meanAndStdDev(frames [][]float64) (mean, stddev []float64) {
	n := len(frames)
	dim := len(frames[0])
	mean = make([]float64, dim)
	for _, f := range frames {
		for i, v := range f {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(n)
	}

	stddev = make([]float64, dim)
	for _, f := range frames {
		for i, v := range f {
			d := v - mean[i]
			stddev[i] += d * d
		}
	}
	for i := range stddev {
		stddev[i] = math.Sqrt(stddev[i] / float64(n))
	}
	return mean, stddev
}

func mean1D(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// estimateTempo derives a rough BPM from the autocorrelation of the onset
// strength envelope, searching the 60-180 BPM range.
func estimateTempo(onsets []float64, sampleRate, hopSize int) float64 {
	if len(onsets) < 4 {
		return 0
	}
	framesPerSecond := float64(sampleRate) / float64(hopSize)
	minLag := int(framesPerSecond * 60.0 / 180.0)
	maxLag := int(framesPerSecond * 60.0 / 60.0)
	if maxLag >= len(onsets) {
		maxLag = len(onsets) - 1
	}
	if minLag < 1 {
		minLag = 1
	}
	if minLag >= maxLag {
		return 0
	}

	bestLag := minLag
	bestScore := -math.MaxFloat64
	for lag := minLag; lag <= maxLag; lag++ {
		var score float64
		for i := 0; i+lag < len(onsets); i++ {
			score += onsets[i] * onsets[i+lag]
		}
		if score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}
	return 60.0 * framesPerSecond / float64(bestLag)
}
