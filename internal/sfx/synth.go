package sfx

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// SampleRate is the output rate of rendered cues.
const SampleRate = 44100

const filterQ = math.Sqrt2 / 2

const (
	bitDepth  = 16
	channels  = 1
	pcmFormat = 1
)

// Samples renders the cue as mono float samples in [-1, 1].
func (c Cue) Samples() []float64 {
	total := int(math.Round(c.Duration * SampleRate))
	if total <= 0 {
		return nil
	}
	out := make([]float64, total)

	var phase float64
	var lp biquad
	for idx := range out {
		t := float64(idx) / SampleRate

		osc := oscillate(c.Wave, phase)
		phase += c.Frequency.Value(t) / SampleRate
		phase -= math.Floor(phase)

		cutoff := defaultCutoff
		if len(c.Cutoff) > 0 {
			cutoff = c.Cutoff.Value(t)
		}
		lp.setLowpass(cutoff, filterQ)
		out[idx] = lp.process(osc) * c.Gain.Value(t)
	}
	return out
}

func oscillate(wave Waveform, phase float64) float64 {
	switch wave {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	case Sawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// biquad is a direct-form-I lowpass section.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func (f *biquad) setLowpass(cutoff, q float64) {
	nyquist := SampleRate / 2.0
	cutoff = math.Max(10, math.Min(cutoff, nyquist*0.99))
	w0 := 2 * math.Pi * cutoff / SampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)
	a0 := 1 + alpha

	f.b0 = (1 - cosW0) / 2 / a0
	f.b1 = (1 - cosW0) / a0
	f.b2 = (1 - cosW0) / 2 / a0
	f.a1 = -2 * cosW0 / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Render encodes the cue as a 16-bit PCM mono WAV file.
func Render(c Cue) ([]byte, error) {
	samples := c.Samples()
	if len(samples) == 0 {
		return nil, fmt.Errorf("sound cue %q has no duration", c.Name)
	}

	pcm := make([]int, len(samples))
	for idx, sample := range samples {
		pcm[idx] = int(math.Round(math.Max(-1, math.Min(sample, 1)) * math.MaxInt16))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: SampleRate},
		Data:           pcm,
		SourceBitDepth: bitDepth,
	}

	out := &seekBuffer{}
	enc := wav.NewEncoder(out, SampleRate, bitDepth, channels, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finish wav: %w", err)
	}
	return out.Bytes(), nil
}

// seekBuffer is an in-memory io.WriteSeeker. The encoder seeks back to patch
// chunk sizes once the samples are written.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.data) {
		b.data = slices.Grow(b.data, end-len(b.data))[:end]
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.data))
	default:
		return 0, errors.New("seek: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("seek: negative position")
	}
	b.pos = int(next)
	return next, nil
}

// Bytes returns the written file.
func (b *seekBuffer) Bytes() []byte {
	return b.data
}
