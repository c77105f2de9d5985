// Package sfx synthesizes the desktop's UI sound cues as small WAV clips.
//
// Each cue is a single oscillator run through a lowpass filter and a gain
// envelope, with parameters automated over time the way an audio graph would
// schedule them.
package sfx

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Waveform selects the oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
)

// Curve is the interpolation used to reach a point from the previous one.
type Curve int

const (
	Step Curve = iota
	Linear
	Exponential
)

// Point schedules a parameter value at a time in seconds.
type Point struct {
	At    float64
	Value float64
	Curve Curve
}

// Param is an automated parameter. Points must be ordered by At.
type Param []Point

// Value returns the parameter value at t seconds.
func (p Param) Value(t float64) float64 {
	if len(p) == 0 {
		return 0
	}
	if t <= p[0].At {
		return p[0].Value
	}
	for idx := 1; idx < len(p); idx++ {
		prev, next := p[idx-1], p[idx]
		if t >= next.At {
			continue
		}
		span := next.At - prev.At
		if span <= 0 {
			return next.Value
		}
		frac := (t - prev.At) / span
		switch next.Curve {
		case Linear:
			return prev.Value + (next.Value-prev.Value)*frac
		case Exponential:
			if prev.Value > 0 && next.Value > 0 {
				return prev.Value * math.Pow(next.Value/prev.Value, frac)
			}
			return prev.Value + (next.Value-prev.Value)*frac
		default:
			return prev.Value
		}
	}
	return p[len(p)-1].Value
}

// defaultCutoff matches the resting frequency of an untouched lowpass node.
const defaultCutoff = 350.0

// Cue is one synthesized sound.
type Cue struct {
	Name      string
	Wave      Waveform
	Duration  float64
	Frequency Param
	Gain      Param
	// Cutoff automates the lowpass filter; nil holds it at the default.
	Cutoff Param
}

var cues = map[string]Cue{
	"hover": {
		Name:      "hover",
		Wave:      Sine,
		Duration:  0.05,
		Frequency: Param{{At: 0, Value: 800}, {At: 0.05, Value: 1200, Curve: Exponential}},
		Gain:      Param{{At: 0, Value: 0.02}, {At: 0.05, Value: 0.001, Curve: Exponential}},
	},
	"click": {
		Name:      "click",
		Wave:      Square,
		Duration:  0.1,
		Frequency: Param{{At: 0, Value: 200}, {At: 0.1, Value: 50, Curve: Exponential}},
		Cutoff:    Param{{At: 0, Value: 3000}, {At: 0.1, Value: 100, Curve: Exponential}},
		Gain:      Param{{At: 0, Value: 0.05}, {At: 0.1, Value: 0.001, Curve: Exponential}},
	},
	"back": {
		Name:      "back",
		Wave:      Triangle,
		Duration:  0.15,
		Frequency: Param{{At: 0, Value: 400}, {At: 0.15, Value: 200, Curve: Exponential}},
		Gain:      Param{{At: 0, Value: 0.05}, {At: 0.15, Value: 0.001, Curve: Exponential}},
	},
	"boot": {
		Name:      "boot",
		Wave:      Sawtooth,
		Duration:  1.5,
		Frequency: Param{{At: 0, Value: 50}, {At: 1.5, Value: 200, Curve: Exponential}},
		Cutoff:    Param{{At: 0, Value: 100}, {At: 1.5, Value: 2000, Curve: Linear}},
		Gain:      Param{{At: 0, Value: 0}, {At: 0.5, Value: 0.1, Curve: Linear}, {At: 1.5, Value: 0, Curve: Linear}},
	},
}

// Lookup returns the named cue.
func Lookup(name string) (Cue, error) {
	cue, ok := cues[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Cue{}, fmt.Errorf("unknown sound cue %q", name)
	}
	return cue, nil
}

// Names lists the available cues in sorted order.
func Names() []string {
	names := make([]string, 0, len(cues))
	for name := range cues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
