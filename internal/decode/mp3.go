package decode

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/zfogg/sonicindex/internal/apierr"
)

// mp3 always decodes to interleaved signed-16 stereo, so no rawBuffer
// variant is needed here; the container itself is already the normalized
// representation.
func decodeMP3(path string, data []byte) (*DecodedAudio, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, apierr.New(apierr.InvalidContainer, path, "not a valid MP3 stream")
	}

	raw, err := io.ReadAll(dec)
	if err != nil && len(raw) == 0 {
		return nil, apierr.Wrap(apierr.Decode, path, err)
	}
	if len(raw) == 0 {
		return nil, apierr.New(apierr.Decode, path, "no MP3 frames decoded")
	}

	const channels = 2
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	sampleRate := dec.SampleRate()
	durationS := float64(len(samples)) / float64(sampleRate*channels)

	return &DecodedAudio{
		SamplesI16: samples,
		SampleRate: sampleRate,
		Channels:   channels,
		DurationS:  durationS,
	}, nil
}
