package scramble

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"
)

type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

func TestFrameRevealsPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		progress float64
		want     string
	}{
		{progress: 0, want: "AAAA"},
		{progress: 0.5, want: "KOAA"},
		{progress: 0.74, want: "KOAA"},
		{progress: 0.75, want: "KOVA"},
		{progress: 1, want: "KOVA"},
		{progress: 7, want: "KOVA"},
		{progress: -1, want: "AAAA"},
	}
	for _, tc := range cases {
		if got := Frame("KOVA", tc.progress, fixedSource(0)); got != tc.want {
			t.Fatalf("Frame(KOVA, %v) = %q, want %q", tc.progress, got, tc.want)
		}
	}
}

func TestFrameUsesGlyphAlphabet(t *testing.T) {
	t.Parallel()

	src := rand.New(rand.NewPCG(1, 2))
	out := Frame("ДОСЬЕ АРХИВ", 0, src)
	if got := len([]rune(out)); got != len([]rune("ДОСЬЕ АРХИВ")) {
		t.Fatalf("rune length = %d, want %d", got, len([]rune("ДОСЬЕ АРХИВ")))
	}
	for _, r := range out {
		if !strings.ContainsRune(Glyphs, r) {
			t.Fatalf("unexpected glyph %q in %q", r, out)
		}
	}
}

func TestFrameEmpty(t *testing.T) {
	t.Parallel()

	if got := Frame("", 0.5, nil); got != "" {
		t.Fatalf("Frame(\"\") = %q", got)
	}
}

func TestRevealProgress(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewReveal("ARCHIVE", start, fixedSource(3))
	if r.Done(start) {
		t.Fatal("Done() at start = true")
	}
	if got := r.Progress(start.Add(500 * time.Millisecond)); got != 0.5 {
		t.Fatalf("Progress() = %v, want 0.5", got)
	}
	if got := r.Frame(start.Add(2 * time.Second)); got != "ARCHIVE" {
		t.Fatalf("Frame() after duration = %q, want ARCHIVE", got)
	}

	r.Restart(start.Add(3 * time.Second))
	if r.Done(start.Add(3 * time.Second)) {
		t.Fatal("Done() right after Restart = true")
	}
}
