package speech

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	// SampleRate of the generated speech: mono signed 16-bit little endian.
	SampleRate     = 24000
	BytesPerSample = 2
	WaveformBars   = 40
	MinBarHeight   = 0.15
	ContentType    = "audio/L16;rate=24000;channels=1"
)

// Samples decodes s16le PCM into floats in [-1, 1). A trailing odd byte is ignored.
func Samples(pcm []byte) []float64 {
	n := len(pcm) / BytesPerSample
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(pcm[i*BytesPerSample:]))
		out[i] = float64(v) / 32768
	}
	return out
}

func Duration(pcm []byte) time.Duration {
	samples := len(pcm) / BytesPerSample
	return time.Duration(samples) * time.Second / SampleRate
}

// Waveform summarizes the audio into bars heights in [MinBarHeight, 1]:
// the mean absolute amplitude of each slice, amplified three times.
func Waveform(pcm []byte, bars int) []float64 {
	if bars <= 0 {
		return nil
	}

	samples := Samples(pcm)
	perBar := len(samples) / bars
	out := make([]float64, bars)

	for i := range out {
		if perBar == 0 {
			out[i] = MinBarHeight
			continue
		}
		sum := 0.0
		for _, s := range samples[i*perBar : (i+1)*perBar] {
			sum += math.Abs(s)
		}
		out[i] = math.Max(MinBarHeight, math.Min(1, sum/float64(perBar)*3))
	}

	return out
}
