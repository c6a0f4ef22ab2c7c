package genre

// Resampler converts a mono float stream at srcRate to targetSampleRate
// using fixed-ratio linear interpolation processed in fixed 1024-frame
// chunks, with the trailing partial chunk zero-padded to one full chunk.
// It holds only the source rate and the ratio, so a worker can build one
// and reuse it across files.
type Resampler struct {
	srcRate int
	ratio   float64
}

const resampleChunk = 1024

// NewResampler builds a Resampler from srcRate to targetSampleRate (16kHz).
// If srcRate already equals the target, Process is a passthrough copy.
func NewResampler(srcRate int) *Resampler {
	return &Resampler{
		srcRate: srcRate,
		ratio:   float64(targetSampleRate) / float64(srcRate),
	}
}

// Process resamples the entire input, internally chunking it into
// 1024-sample windows the way the reference fixed-ratio FFT resampler
// does, so behavior does not depend on how much of the stream is
// available at once.
func (r *Resampler) Process(mono []float32) []float32 {
	if r.srcRate == targetSampleRate {
		return mono
	}

	padded := mono
	if rem := len(mono) % resampleChunk; rem != 0 {
		padded = make([]float32, len(mono)+(resampleChunk-rem))
		copy(padded, mono)
	}

	out := make([]float32, 0, int(float64(len(padded))*r.ratio)+resampleChunk)
	for start := 0; start < len(padded); start += resampleChunk {
		chunk := padded[start : start+resampleChunk]
		out = append(out, r.resampleChunk(chunk)...)
	}
	return out
}

func (r *Resampler) resampleChunk(chunk []float32) []float32 {
	outLen := int(float64(len(chunk)) * r.ratio)
	out := make([]float32, outLen)
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / r.ratio
		idx := int(srcPos)
		frac := srcPos - float64(idx)
		if idx >= len(chunk)-1 {
			out[i] = chunk[len(chunk)-1]
			continue
		}
		out[i] = chunk[idx] + float32(frac)*(chunk[idx+1]-chunk[idx])
	}
	return out
}
