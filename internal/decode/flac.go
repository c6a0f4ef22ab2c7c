package decode

import (
	"bytes"
	"io"

	"github.com/mewkiz/flac"
	"github.com/zfogg/sonicindex/internal/apierr"
)

func decodeFLAC(path string, data []byte) (*DecodedAudio, error) {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, apierr.New(apierr.InvalidContainer, path, "not a valid FLAC stream")
	}

	sampleRate := int(stream.Info.SampleRate)
	channels := int(stream.Info.NChannels)
	bitDepth := int(stream.Info.BitsPerSample)

	raw := &rawBuffer{sampleRate: sampleRate, channels: channels}
	raw.kind = kindForBitDepth(bitDepth)

	var ints []int32
	for {
		frame, ferr := stream.ParseNext()
		if ferr == io.EOF {
			break
		}
		if ferr != nil {
			// A single malformed frame on an otherwise well-formed stream is
			// non-fatal; stop decoding and use what was collected so far.
			break
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for c := 0; c < channels && c < len(frame.Subframes); c++ {
				ints = append(ints, frame.Subframes[c].Samples[i])
			}
		}
	}

	if len(ints) == 0 {
		return nil, apierr.New(apierr.Decode, path, "no FLAC frames decoded")
	}
	raw.ints = ints

	samples := raw.normalizeToS16()
	durationS := float64(len(samples)) / float64(sampleRate*channels)

	return &DecodedAudio{
		SamplesI16: samples,
		SampleRate: sampleRate,
		Channels:   channels,
		DurationS:  durationS,
	}, nil
}

func kindForBitDepth(bits int) sampleKind {
	switch bits {
	case 8:
		return kindS8
	case 16:
		return kindS16
	case 24:
		return kindS24
	case 32:
		return kindS32
	default:
		return kindS16
	}
}
