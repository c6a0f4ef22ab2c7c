package decode

import "math"

// normalizeToS16 applies the fixed, lossless-where-possible conversion
// rules from the raw decoded representation to interleaved signed-16 PCM.
func (r *rawBuffer) normalizeToS16() []int16 {
	switch r.kind {
	case kindS16:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			out[i] = int16(v)
		}
		return out
	case kindS8:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			out[i] = int16(v) << 8
		}
		return out
	case kindU8:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			signed := int32(v) - 128
			out[i] = int16(signed << 8)
		}
		return out
	case kindU16:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			out[i] = int16(int32(v) - 32768)
		}
		return out
	case kindS24:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			out[i] = int16(v >> 8)
		}
		return out
	case kindU24:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			signed := v - (1 << 23)
			out[i] = int16(signed >> 8)
		}
		return out
	case kindS32:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			out[i] = int16(v >> 16)
		}
		return out
	case kindU32:
		out := make([]int16, len(r.ints))
		for i, v := range r.ints {
			signed := int64(v) - (1 << 31)
			out[i] = int16(signed >> 16)
		}
		return out
	case kindF32, kindF64:
		out := make([]int16, len(r.floats))
		for i, v := range r.floats {
			out[i] = saturateS16(v * 32767)
		}
		return out
	default:
		return nil
	}
}

func saturateS16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(math.Round(v))
}

// ToMono22050 averages all channels into a mono float stream in [-1, 1]
// and linearly interpolates it to 22050 Hz. The conversion is
// deterministic for a given input: length is floor(len(mono) * 22050 /
// sampleRate).
func (d *DecodedAudio) ToMono22050() []float32 {
	mono := toMonoFloat(d.SamplesI16, d.Channels)
	if d.SampleRate == 22050 {
		return mono
	}
	return resampleLinear(mono, d.SampleRate, 22050)
}

func toMonoFloat(samples []int16, channels int) []float32 {
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

func resampleLinear(mono []float32, srcSR, dstSR int) []float32 {
	if len(mono) == 0 || srcSR <= 0 {
		return nil
	}
	ratio := float64(dstSR) / float64(srcSR)
	outLen := int(math.Floor(float64(len(mono)) * ratio))
	out := make([]float32, outLen)
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) * float64(srcSR) / float64(dstSR)
		idx := int(math.Floor(srcPos))
		frac := srcPos - float64(idx)
		if idx >= len(mono)-1 {
			out[i] = mono[len(mono)-1]
			continue
		}
		out[i] = mono[idx] + float32(frac)*(mono[idx+1]-mono[idx])
	}
	return out
}
