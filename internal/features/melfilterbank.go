package features

import "math"

// createMelFilterbank builds a triangular mel filterbank over the positive
// half of an FFT magnitude spectrum of the given size/sample rate, using
// the HTK mel scale.
func createMelFilterbank(numFilters, fftSize, sampleRate int) [][]float64 {
	numBins := fftSize/2 + 1
	minMel := hzToMel(0)
	maxMel := hzToMel(float64(sampleRate) / 2)

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

// hzToMel and melToHz use the HTK mel-scale formula: 2595 * log10(1 + f/700).
func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}
