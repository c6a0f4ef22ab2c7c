package decode

import (
	"bytes"

	"github.com/go-audio/wav"
	"github.com/zfogg/sonicindex/internal/apierr"
)

func decodeWAV(path string, data []byte) (*DecodedAudio, error) {
	r := bytes.NewReader(data)
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, apierr.New(apierr.InvalidContainer, path, "not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, apierr.Wrap(apierr.Decode, path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, apierr.New(apierr.Decode, path, "empty WAV PCM buffer")
	}

	raw := &rawBuffer{
		sampleRate: buf.Format.SampleRate,
		channels:   buf.Format.NumChannels,
	}
	switch dec.BitDepth {
	case 8:
		raw.kind = kindU8
	case 16:
		raw.kind = kindS16
	case 24:
		raw.kind = kindS24
	case 32:
		raw.kind = kindS32
	default:
		raw.kind = kindS16
	}
	raw.ints = make([]int32, len(buf.Data))
	for i, v := range buf.Data {
		raw.ints[i] = int32(v)
	}

	samples := raw.normalizeToS16()
	durationS := float64(len(samples)) / float64(raw.sampleRate*raw.channels)

	return &DecodedAudio{
		SamplesI16: samples,
		SampleRate: raw.sampleRate,
		Channels:   raw.channels,
		DurationS:  durationS,
	}, nil
}
