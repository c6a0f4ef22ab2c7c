// Package decode reads a compressed audio file fully into memory, probes
// its container by extension, and normalizes the first audio track to
// interleaved signed-16 PCM plus a derived mono/22050 Hz float stream.
package decode

import (
	"path/filepath"
	"strings"

	"github.com/zfogg/sonicindex/internal/apierr"
)

// DecodedAudio is the normalized output of decode: interleaved s16 PCM at
// the source sample rate and channel count, plus its duration.
type DecodedAudio struct {
	SamplesI16 []int16
	SampleRate int
	Channels   int
	DurationS  float64
}

// sampleKind tags the native sample representation a container decoder
// produced, before normalization to interleaved s16. Modeling AudioBuffer
// this way avoids dynamic dispatch: each variant has one conversion rule.
type sampleKind int

const (
	kindS8 sampleKind = iota
	kindU8
	kindS16
	kindU16
	kindS24
	kindU24
	kindS32
	kindU32
	kindF32
	kindF64
)

// rawBuffer is the tagged variant over native sample types produced by a
// container-specific decoder, prior to the fixed conversion rules of
// normalizeToS16.
type rawBuffer struct {
	kind       sampleKind
	ints       []int32   // valid for integer kinds, sign-extended/held as int32
	floats     []float64 // valid for kindF32/kindF64
	sampleRate int
	channels   int
}

// Decode reads path fully into memory and decodes its first audio track.
// The container is selected by file extension; InvalidContainer is
// returned for an unsupported extension or a stream its container parser
// rejects, Io for a read failure, Decode for a parsed stream that yields no
// PCM.
func Decode(path string) (*DecodedAudio, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, apierr.Wrap(apierr.Io, path, err)
	}
	return DecodeBytes(path, data)
}

// DecodeBytes decodes an in-memory file, using ext (a filename or bare
// extension) to select the container parser.
func DecodeBytes(ext string, data []byte) (*DecodedAudio, error) {
	switch containerOf(ext) {
	case "mp3":
		return decodeMP3(ext, data)
	case "wav":
		return decodeWAV(ext, data)
	case "flac":
		return decodeFLAC(ext, data)
	case "m4a":
		return decodeM4A(ext, data)
	case "ogg":
		return decodeOgg(ext, data)
	default:
		return nil, apierr.New(apierr.InvalidContainer, ext, "unsupported container extension")
	}
}

func containerOf(pathOrExt string) string {
	ext := pathOrExt
	if strings.ContainsRune(pathOrExt, '.') || strings.ContainsRune(pathOrExt, '/') {
		ext = filepath.Ext(pathOrExt)
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return ext
}
