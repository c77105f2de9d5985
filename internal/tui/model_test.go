package tui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []archive.Item {
	return []archive.Item{
		{
			ID:    "kovacs",
			Kind:  archive.KindCharacter,
			Name:  "Ivan Kovacs",
			Sub:   "Security Officer",
			Stats: archive.Stats{{Key: "Age", Value: "34"}, {Key: "Rank", Value: "Officer"}},
			Tabs: []archive.Tab{
				{Title: "Biography", Content: archive.TabContent{Description: []string{"Born on Mars."}}},
				{Title: "Incidents", Content: archive.TabContent{Description: []string{"None on file."}}},
			},
		},
		{
			ID:   "crime_scene",
			Kind: archive.KindGallery,
			Name: "crime scene",
			Sub:  "2 IMAGE(S) // EVIDENTIARY",
			GalleryImages: []archive.GalleryImage{
				{Name: "01.png", URL: "/api/asset/crime_scene/01.png"},
				{Name: "02.png", URL: "/api/asset/crime_scene/02.png"},
			},
		},
		{ID: "locked_1", Kind: archive.KindLocked, Name: "COMMAND_ONLY", Locked: true},
	}
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, opts ...Option) (Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)}
	base := []Option{
		WithClock(clock.Now),
		WithScrambleSource(rand.New(rand.NewPCG(1, 2))),
		WithMarkdownStyle("notty"),
	}
	return New(testItems(), append(base, opts...)...), clock
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func boot(t *testing.T, m Model) Model {
	t.Helper()
	for range viewstate.BootLog {
		m = send(t, m, bootTickMsg{})
	}
	return m
}

func TestBootThenLockThenUnlock(t *testing.T) {
	m, clock := newTestModel(t)
	assert.Equal(t, viewstate.PhaseBooting, m.Phase())

	m = send(t, m, bootTickMsg{}, bootTickMsg{})
	view := m.View()
	assert.Contains(t, view, viewstate.BootLog[0])
	assert.Contains(t, view, viewstate.BootLog[1])
	assert.NotContains(t, view, viewstate.BootLog[2])

	m = boot(t, m)
	require.Equal(t, viewstate.PhaseLocked, m.Phase())
	assert.Contains(t, m.View(), "09:30")
	assert.Contains(t, m.View(), "FRIDAY, MAY 1")

	m = send(t, m, clockTickMsg(clock.now.Add(5*time.Minute)))
	assert.Contains(t, m.View(), "09:35")

	m = send(t, m, runes("x"))
	assert.Equal(t, viewstate.PhaseLocked, m.Phase())

	m = send(t, m, key(tea.KeyEnter))
	require.Equal(t, viewstate.PhaseUnlocked, m.Phase())

	clock.now = clock.now.Add(2 * time.Second)
	view = m.View()
	assert.Contains(t, view, viewstate.HomeTitle)
	assert.Contains(t, view, "Ivan Kovacs")
	assert.Contains(t, view, "DIR-01")
	assert.Contains(t, view, "COMMAND_ONLY")
}

func TestEnterSkipsBoot(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, viewstate.PhaseLocked, m.Phase())
}

func TestTitleScramblesUntilRevealEnds(t *testing.T) {
	m, clock := newTestModel(t)
	m = send(t, boot(t, m), key(tea.KeyEnter))

	assert.NotContains(t, m.View(), viewstate.HomeTitle)

	next, cmd := m.Update(revealTickMsg{})
	assert.NotNil(t, cmd)
	m = next.(Model)

	clock.now = clock.now.Add(time.Second)
	next, cmd = m.Update(revealTickMsg{})
	assert.Nil(t, cmd)
	assert.Contains(t, next.(Model).View(), viewstate.HomeTitle)
}

func TestOpenDossierAndSwitchTabs(t *testing.T) {
	m, clock := newTestModel(t)
	m = send(t, boot(t, m), tea.WindowSizeMsg{Width: 100, Height: 60}, key(tea.KeyEnter), key(tea.KeyEnter))
	clock.now = clock.now.Add(2 * time.Second)

	require.Equal(t, viewstate.ViewDossier, m.Nav().View())
	view := m.View()
	assert.Contains(t, view, "BIOGRAPHY")
	assert.Contains(t, view, "Born on Mars.")
	assert.NotContains(t, view, "None on file.")

	m = send(t, m, key(tea.KeyTab))
	assert.Equal(t, 1, m.Nav().Tab())
	assert.Contains(t, m.View(), "None on file.")

	m = send(t, m, key(tea.KeyTab))
	assert.Equal(t, 0, m.Nav().Tab())

	m = send(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, 1, m.Nav().Tab())

	m = send(t, m, key(tea.KeyEsc))
	assert.Equal(t, viewstate.ViewHome, m.Nav().View())
}

func TestGalleryNavigationAndZoom(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, boot(t, m), key(tea.KeyEnter), key(tea.KeyDown), key(tea.KeyEnter))
	require.Equal(t, viewstate.ViewGallery, m.Nav().View())
	assert.Contains(t, m.View(), "IMAGE 1 / 2")

	m = send(t, m, runes("+"))
	assert.Contains(t, m.View(), "ZOOM 120%")

	m = send(t, m, key(tea.KeyRight))
	view := m.View()
	assert.Contains(t, view, "IMAGE 2 / 2")
	assert.Contains(t, view, "02.png")
	assert.Contains(t, view, "ZOOM 100%")

	m = send(t, m, key(tea.KeyRight))
	assert.Equal(t, 1, m.Nav().Gallery().Index())

	m = send(t, m, runes("-"))
	assert.Contains(t, m.View(), "ZOOM 83%")

	m = send(t, m, key(tea.KeyBackspace))
	assert.Equal(t, viewstate.ViewHome, m.Nav().View())
}

func TestLockedEntryIsDenied(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, boot(t, m), key(tea.KeyEnter), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	assert.Equal(t, 2, m.Cursor())

	m = send(t, m, key(tea.KeyEnter))
	assert.Equal(t, viewstate.ViewHome, m.Nav().View())
	assert.Equal(t, accessDenied, m.Status())
	assert.Contains(t, m.View(), accessDenied)

	m = send(t, m, key(tea.KeyUp))
	assert.Empty(t, m.Status())
}

func TestStartIDSkipsLockScreen(t *testing.T) {
	m, _ := newTestModel(t, WithStartID("CRIME_SCENE"))
	m = boot(t, m)
	assert.Equal(t, viewstate.PhaseUnlocked, m.Phase())
	assert.Equal(t, viewstate.ViewGallery, m.Nav().View())

	for _, id := range []string{"locked_1", "nobody"} {
		home, _ := newTestModel(t, WithStartID(id))
		home = boot(t, home)
		assert.Equal(t, viewstate.PhaseUnlocked, home.Phase(), id)
		assert.Equal(t, viewstate.ViewHome, home.Nav().View(), id)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	for _, msg := range []tea.KeyMsg{runes("q"), key(tea.KeyCtrlC)} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	}
}

func TestWindowSizeResizesDossier(t *testing.T) {
	m, _ := newTestModel(t, WithStartID("kovacs"))
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.dossier.Width)
	assert.Equal(t, 32, m.dossier.Height)
	assert.True(t, strings.Contains(m.dossier.View(), "Ivan Kovacs"))
}
