package fingerprint

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	chromaFrameSize = 4096
	chromaHop       = 1024
	chromaBins      = 12
	minFreqHz       = 28.0
	maxFreqHz       = 3520.0
	referenceFreqHz = 440.0
)

// chromaFrames computes a 12-bin chroma (pitch class) vector for each
// overlapping analysis frame of a mono float stream, following the same
// "bucket FFT bins into log-frequency classes, normalize" shape the
// reference Chromaprint feature extractor uses, ahead of its own
// classifier stage.
func chromaFrames(mono []float32, sampleRate int) [][chromaBins]float64 {
	if len(mono) < chromaFrameSize {
		return nil
	}
	window := hannWindow(chromaFrameSize)
	fft := fourier.NewFFT(chromaFrameSize)

	numFrames := (len(mono)-chromaFrameSize)/chromaHop + 1
	frames := make([][chromaBins]float64, 0, numFrames)

	windowed := make([]float64, chromaFrameSize)
	for start := 0; start+chromaFrameSize <= len(mono); start += chromaHop {
		for i := 0; i < chromaFrameSize; i++ {
			windowed[i] = float64(mono[start+i]) * window[i]
		}
		spectrum := fft.Coefficients(nil, windowed)

		var chroma [chromaBins]float64
		for k := 1; k < len(spectrum); k++ {
			freq := float64(k) * float64(sampleRate) / float64(chromaFrameSize)
			if freq < minFreqHz || freq > maxFreqHz {
				continue
			}
			mag := math.Hypot(real(spectrum[k]), imag(spectrum[k]))
			bin := pitchClass(freq)
			chroma[bin] += mag
		}
		normalizeInPlace(chroma[:])
		frames = append(frames, chroma)
	}
	return frames
}

// pitchClass maps a frequency to one of 12 pitch classes, referenced to
// A440, matching the octave-folded chroma convention.
func pitchClass(freq float64) int {
	semitones := 12.0 * math.Log2(freq/referenceFreqHz)
	class := int(math.Round(semitones)) % chromaBins
	if class < 0 {
		class += chromaBins
	}
	return class
}

func normalizeInPlace(v []float64) {
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq < 1e-12 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i := range v {
		v[i] /= norm
	}
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}
