package decode

import (
	"bytes"
	"context"
	"io"

	"github.com/llehouerou/go-faad2"
	"github.com/zfogg/sonicindex/internal/apierr"
)

func decodeM4A(path string, data []byte) (*DecodedAudio, error) {
	ctx := context.Background()
	reader, err := faad2.OpenM4A(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, apierr.New(apierr.InvalidContainer, path, "not a valid M4A/AAC container")
	}
	defer reader.Close(ctx)

	channels := int(reader.Channels())
	sampleRate := int(reader.SampleRate())

	var samples []int16
	buf := make([]int16, 4096)
	for {
		n, rerr := reader.Read(ctx, buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			// A decode error partway through a well-formed container is
			// non-fatal; keep what was decoded so far.
			break
		}
	}

	if len(samples) == 0 {
		return nil, apierr.New(apierr.Decode, path, "no AAC frames decoded")
	}

	durationS := float64(len(samples)) / float64(sampleRate*channels)
	if d := reader.Duration(); d > 0 {
		durationS = d.Seconds()
	}

	return &DecodedAudio{
		SamplesI16: samples,
		SampleRate: sampleRate,
		Channels:   channels,
		DurationS:  durationS,
	}, nil
}
