package genre

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/apierr"
)

func TestLabelsHasExactly87Entries(t *testing.T) {
	require.Equal(t, 87, NumLabels)
	require.Equal(t, "60s", Labels[0])
	require.Equal(t, "worldfusion", Labels[86])
}

func TestAvailableFalseWhenModelsMissing(t *testing.T) {
	c := NewClassifier(t.TempDir())
	require.False(t, c.Available())
}

func TestModelDirReturnsConstructorArgument(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(dir)
	require.Equal(t, dir, c.ModelDir())
}

func TestClassifyReturnsClassifierInitWhenModelsMissing(t *testing.T) {
	c := NewClassifier(filepath.Join(t.TempDir(), "nonexistent"))
	mono := sine(16000, 3.0, 220)
	_, err := c.Classify(mono, 16000, 3)
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.ClassifierInit))
}

func TestPatchesSkippedWhenTooFewFrames(t *testing.T) {
	melSpec := make([][]float32, 10)
	for i := range melSpec {
		melSpec[i] = make([]float32, nMels)
	}
	require.Empty(t, patches(melSpec))
}

func TestTopLabelsSortedDescendingAndTruncated(t *testing.T) {
	activations := make([]float32, NumLabels)
	activations[10] = 0.9
	activations[20] = 0.5
	activations[3] = 0.99
	top := topLabels(activations, 2)
	require.Len(t, top, 2)
	require.Equal(t, Labels[3], top[0].Name)
	require.Equal(t, Labels[10], top[1].Name)
}

func TestResamplerProducesExpectedLength(t *testing.T) {
	r := NewResampler(44100)
	mono := sine(44100, 1.0, 440)
	out := r.Process(mono)
	require.NotEmpty(t, out)
	// 44100 samples pad to 44 chunks of 1024; each yields int(1024*16000/44100) = 371.
	require.Len(t, out, 44*371)
}

func sine(sampleRate int, seconds, freq float64) []float32 {
	n := int(float64(sampleRate) * seconds)
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)))
	}
	return out
}
