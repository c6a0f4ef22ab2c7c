package fingerprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/apierr"
)

func TestFingerprintEmptyInputIsNoSamples(t *testing.T) {
	_, err := Fingerprint(nil, 44100, 1)
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.NoSamples))
}

func TestFingerprintAlphabetHasNoPadding(t *testing.T) {
	samples := sineWave(44100, 2, 3.0, 440)
	fp, err := Fingerprint(samples, 44100, 2)
	require.NoError(t, err)
	require.NotEmpty(t, fp)
	for _, c := range fp {
		require.NotEqual(t, byte('='), byte(c))
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	samples := sineWave(44100, 1, 2.0, 440)
	a, err := Fingerprint(samples, 44100, 1)
	require.NoError(t, err)
	b, err := Fingerprint(samples, 44100, 1)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFingerprintIdenticalAudioMatches(t *testing.T) {
	a := sineWave(44100, 1, 3.0, 440)
	b := sineWave(44100, 1, 3.0, 440)
	fpA, err := Fingerprint(a, 44100, 1)
	require.NoError(t, err)
	fpB, err := Fingerprint(b, 44100, 1)
	require.NoError(t, err)
	require.Equal(t, fpA, fpB)
}

func TestBase64URLRoundTrip(t *testing.T) {
	data := []byte{0, 1, 2, 3, 255, 254, 128, 7, 9, 200}
	encoded := encodeBase64URL(data)
	decoded, err := decodeBase64URL(encoded)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	fps := []uint32{0, 1, 0xFFFFFFFF, 0x12345678, 0, 0, 42}
	compressed := compress(fps)
	decoded, err := decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, fps, decoded)
}

func TestFingerprintRoundTripsThroughDecode(t *testing.T) {
	samples := sineWave(44100, 1, 2.0, 220)
	fp, err := Fingerprint(samples, 44100, 1)
	require.NoError(t, err)
	subs, err := Decode(fp)
	require.NoError(t, err)
	require.NotEmpty(t, subs)
}

func sineWave(sampleRate, channels int, seconds, freq float64) []int16 {
	n := int(float64(sampleRate) * seconds)
	out := make([]int16, n*channels)
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
		s := int16(v * 20000)
		for c := 0; c < channels; c++ {
			out[i*channels+c] = s
		}
	}
	return out
}
