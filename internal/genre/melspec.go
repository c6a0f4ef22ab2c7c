package genre

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	targetSampleRate = 16000
	nFFT             = 1024
	hopLength        = 512
	nMels            = 96
	melFMax          = 8000.0
	patchFrames      = 128
	patchStride      = 64
)

// logMelSpectrogram computes a (frames x nMels) log-mel spectrogram of a
// mono stream already at targetSampleRate, using a Hann window, magnitude
// spectrum, HTK mel projection, and ln(E + 1e-6) compression.
func logMelSpectrogram(mono []float32) [][]float32 {
	if len(mono) < nFFT {
		return nil
	}
	window := hannWindow(nFFT)
	fft := fourier.NewFFT(nFFT)
	filters := melFilterbank(nMels, nFFT, targetSampleRate, melFMax)

	numFrames := (len(mono)-nFFT)/hopLength + 1
	out := make([][]float32, 0, numFrames)

	windowed := make([]float64, nFFT)
	for start := 0; start+nFFT <= len(mono); start += hopLength {
		for i := 0; i < nFFT; i++ {
			windowed[i] = float64(mono[start+i]) * window[i]
		}
		coeffs := fft.Coefficients(nil, windowed)

		row := make([]float32, nMels)
		for m := 0; m < nMels; m++ {
			var energy float64
			filter := filters[m]
			for k := 0; k < len(coeffs) && k < len(filter); k++ {
				mag := math.Hypot(real(coeffs[k]), imag(coeffs[k]))
				energy += mag * filter[k]
			}
			row[m] = float32(math.Log(energy + 1e-6))
		}
		out = append(out, row)
	}
	return out
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// melFilterbank builds a triangular filterbank over [0, fMax] on the HTK
// mel scale: 2595 * log10(1 + f/700).
func melFilterbank(numFilters, fftSize, sampleRate int, fMax float64) [][]float64 {
	numBins := fftSize/2 + 1
	minMel := hzToMel(0)
	maxMel := hzToMel(fMax)

	melPoints := make([]float64, numFilters+2)
	for i := range melPoints {
		melPoints[i] = minMel + (maxMel-minMel)*float64(i)/float64(numFilters+1)
	}
	binPoints := make([]int, numFilters+2)
	for i, mel := range melPoints {
		hz := melToHz(mel)
		binPoints[i] = int(math.Floor((float64(fftSize) + 1) * hz / float64(sampleRate)))
	}

	filters := make([][]float64, numFilters)
	for m := 0; m < numFilters; m++ {
		filters[m] = make([]float64, numBins)
		left, center, right := binPoints[m], binPoints[m+1], binPoints[m+2]
		for k := left; k < center && k < numBins; k++ {
			if center != left {
				filters[m][k] = float64(k-left) / float64(center-left)
			}
		}
		for k := center; k < right && k < numBins; k++ {
			if right != center {
				filters[m][k] = float64(right-k) / float64(right-center)
			}
		}
	}
	return filters
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// patches slices a (frames x nMels) spectrogram into 128-frame windows
// with stride 64. If fewer than patchFrames frames exist, it returns no
// patches: callers must skip classification entirely in that case.
func patches(melSpec [][]float32) [][]float32 {
	if len(melSpec) < patchFrames {
		return nil
	}
	var out [][]float32
	for start := 0; start+patchFrames <= len(melSpec); start += patchStride {
		flat := make([]float32, 0, patchFrames*nMels)
		for i := 0; i < patchFrames; i++ {
			flat = append(flat, melSpec[start+i]...)
		}
		out = append(out, flat)
	}
	return out
}
