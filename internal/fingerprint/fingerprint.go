// Package fingerprint computes a Chromaprint-style acoustic fingerprint
// from decoded PCM: a chroma filterbank feeds a classifying quantizer that
// produces one 32-bit subfingerprint per analysis frame, which is then
// delta-compressed and base64url-encoded. The filters, quantizer and
// compressed bitstream are this package's own, so its fingerprints are not
// byte-compatible with libchromaprint or AcoustID; only the header layout
// and the base64url alphabet match theirs.
package fingerprint

import (
	"errors"

	"github.com/zfogg/sonicindex/internal/apierr"
)

var (
	errInvalidBase64        = errors.New("fingerprint: invalid base64url character")
	errTruncatedFingerprint = errors.New("fingerprint: truncated compressed fingerprint")
)

// Fingerprint computes the base64url-encoded, compressed acoustic
// fingerprint of interleaved s16 PCM. The header carries the "test2"
// algorithm id, but the subfingerprints are not those of Chromaprint's
// test2 preset. Empty input is rejected with NoSamples.
func Fingerprint(samplesI16 []int16, sampleRate, channels int) (string, error) {
	if len(samplesI16) == 0 {
		return "", apierr.New(apierr.NoSamples, "", "fingerprinter received no samples")
	}

	mono := toMonoForFingerprint(samplesI16, channels)
	frames := chromaFrames(mono, sampleRate)
	if len(frames) == 0 {
		return "", apierr.New(apierr.NoSamples, "", "input too short to analyze")
	}

	fps := subFingerprints(frames)
	if len(fps) == 0 {
		return "", apierr.New(apierr.NoSamples, "", "input too short to fingerprint")
	}

	compressed := compress(fps)
	return encodeBase64URL(compressed), nil
}

// Decode parses a fingerprint string back into its subfingerprint
// sequence, the inverse of the encode+compress path in Fingerprint. It
// exists primarily to exercise the round-trip law and to let comparison
// routines work in subfingerprint space rather than string space.
func Decode(fp string) ([]uint32, error) {
	raw, err := decodeBase64URL(fp)
	if err != nil {
		return nil, err
	}
	return decompress(raw)
}

func toMonoForFingerprint(samples []int16, channels int) []float32 {
	if channels <= 1 {
		out := make([]float32, len(samples))
		for i, s := range samples {
			out[i] = float32(s) / 32768.0
		}
		return out
	}
	frames := len(samples) / channels
	out := make([]float32, frames)
	for f := 0; f < frames; f++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += float32(samples[f*channels+c]) / 32768.0
		}
		out[f] = sum / float32(channels)
	}
	return out
}
