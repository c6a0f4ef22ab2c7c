package decode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/apierr"
)

func TestDecodeUnsupportedExtension(t *testing.T) {
	_, err := DecodeBytes("track.aiff", []byte{0, 1, 2})
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.InvalidContainer))
}

func TestDecodeOggInvalidContainer(t *testing.T) {
	_, err := DecodeBytes("track.ogg", []byte("not an ogg stream"))
	require.Error(t, err)
	require.True(t, apierr.IsKind(err, apierr.InvalidContainer))
}

func TestNormalizeToS16RoundTripsS16(t *testing.T) {
	raw := &rawBuffer{kind: kindS16, ints: []int32{0, 100, -100, 32767, -32768}}
	out := raw.normalizeToS16()
	require.Equal(t, []int16{0, 100, -100, 32767, -32768}, out)
}

func TestNormalizeToS16U8Bias(t *testing.T) {
	raw := &rawBuffer{kind: kindU8, ints: []int32{0, 128, 255}}
	out := raw.normalizeToS16()
	// 0 -> -128 << 8, 128 -> 0, 255 -> 127 << 8
	require.Equal(t, int16(-128<<8), out[0])
	require.Equal(t, int16(0), out[1])
	require.Equal(t, int16(127<<8), out[2])
}

func TestNormalizeToS16F32Saturates(t *testing.T) {
	raw := &rawBuffer{kind: kindF32, floats: []float64{2.0, -2.0, 0.5}}
	out := raw.normalizeToS16()
	require.Equal(t, int16(32767), out[0])
	require.Equal(t, int16(-32768), out[1])
}

func TestToMono22050LengthLaw(t *testing.T) {
	d := &DecodedAudio{
		SamplesI16: make([]int16, 44100*2),
		SampleRate: 44100,
		Channels:   2,
	}
	mono := d.ToMono22050()
	wantLen := int(math.Floor(float64(44100) * 22050.0 / 44100.0))
	require.Equal(t, wantLen, len(mono))
}

func TestToMono22050Deterministic(t *testing.T) {
	samples := make([]int16, 48000)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}
	d := &DecodedAudio{SamplesI16: samples, SampleRate: 48000, Channels: 1}
	a := d.ToMono22050()
	b := d.ToMono22050()
	require.Equal(t, a, b)
}
