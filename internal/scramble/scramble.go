// Package scramble renders the text-scramble reveal used on titles: revealed
// characters settle left to right while the rest cycle through random glyphs.
package scramble

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// Glyphs is the alphabet used for unrevealed characters.
const Glyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890!@#$%^&*()_+-=[]{}|;:,.<>?"

const (
	DefaultDuration = 1000 * time.Millisecond
	DefaultInterval = 30 * time.Millisecond
)

// Source picks glyph indexes. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Frame renders text at progress in [0,1].
func Frame(text string, progress float64, src Source) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	progress = math.Max(0, math.Min(progress, 1))
	revealed := int(math.Floor(progress * float64(len(runes))))
	if revealed >= len(runes) {
		return text
	}
	if src == nil {
		src = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	var b strings.Builder
	b.Grow(len(text))
	for idx, r := range runes {
		if idx < revealed {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(Glyphs[src.IntN(len(Glyphs))])
	}
	return b.String()
}

// Reveal tracks one running scramble animation.
type Reveal struct {
	Text     string
	Duration time.Duration
	Interval time.Duration

	start time.Time
	src   Source
}

// NewReveal starts a reveal of text at start.
func NewReveal(text string, start time.Time, src Source) *Reveal {
	return &Reveal{
		Text:     text,
		Duration: DefaultDuration,
		Interval: DefaultInterval,
		start:    start,
		src:      src,
	}
}

// Restart begins the animation again from now.
func (r *Reveal) Restart(now time.Time) {
	r.start = now
}

// Progress returns the completed fraction at now.
func (r *Reveal) Progress(now time.Time) float64 {
	if r.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(r.start)
	return math.Max(0, math.Min(float64(elapsed)/float64(r.Duration), 1))
}

// Done reports whether the reveal has finished at now.
func (r *Reveal) Done(now time.Time) bool {
	return r.Progress(now) >= 1
}

// Frame renders the reveal at now.
func (r *Reveal) Frame(now time.Time) string {
	return Frame(r.Text, r.Progress(now), r.src)
}
