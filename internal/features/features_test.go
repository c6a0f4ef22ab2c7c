package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func sine(sampleRate int, seconds, freq float64) []float32 {
	n := int(float64(sampleRate) * seconds)
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
	}
	return out
}

func TestAnalyzeProducesFixedDimension(t *testing.T) {
	e := NewExtractor(22050)
	vec, err := e.Analyze(sine(22050, 3.0, 440))
	require.NoError(t, err)
	require.Len(t, vec, Dimension)
}

func TestAnalyzeTooShortErrors(t *testing.T) {
	e := NewExtractor(22050)
	_, err := e.Analyze(sine(22050, 0.01, 440))
	require.Error(t, err)
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := NewExtractor(22050)
	samples := sine(22050, 2.0, 220)
	a, err := e.Analyze(samples)
	require.NoError(t, err)
	b, err := e.Analyze(samples)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
