package decode

import (
	"bytes"
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/zfogg/sonicindex/internal/apierr"
)

// decodeOgg decodes an Ogg Vorbis stream to interleaved float samples via
// a pure-Go Vorbis decoder, then normalizes through the same s16 path
// every other container uses.
func decodeOgg(path string, data []byte) (*DecodedAudio, error) {
	reader, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, apierr.New(apierr.InvalidContainer, path, "not a valid Ogg Vorbis stream")
	}

	sampleRate := reader.SampleRate()
	channels := reader.Channels()

	var floats []float64
	buf := make([]float32, 4096)
	for {
		n, rerr := reader.Read(buf)
		for i := 0; i < n; i++ {
			floats = append(floats, float64(buf[i]))
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			// A malformed packet on an otherwise well-formed stream is
			// non-fatal; stop decoding and use what was collected so far.
			break
		}
	}

	if len(floats) == 0 {
		return nil, apierr.New(apierr.Decode, path, "no Vorbis samples decoded")
	}

	raw := &rawBuffer{kind: kindF32, floats: floats, sampleRate: sampleRate, channels: channels}
	samples := raw.normalizeToS16()
	durationS := float64(len(samples)) / float64(sampleRate*channels)

	return &DecodedAudio{
		SamplesI16: samples,
		SampleRate: sampleRate,
		Channels:   channels,
		DurationS:  durationS,
	}, nil
}
