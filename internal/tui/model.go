// Package tui runs the archive desktop in a terminal: the boot log, the lock
// screen, the folder list and the dossier and gallery viewers, driven by the
// same viewstate controller as the browser shell.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/platform/branding"
	"github.com/cryals/art-archive/internal/scramble"
	"github.com/cryals/art-archive/internal/viewstate"
)

const (
	bootInterval  = 180 * time.Millisecond
	clockInterval = time.Second

	clockLayout = "15:04"
	dateLayout  = "Monday, January 2"

	accessDenied = "ACCESS DENIED // CLEARANCE INSUFFICIENT"
)

type (
	bootTickMsg   struct{}
	clockTickMsg  time.Time
	revealTickMsg struct{}
)

// Option configures a Model.
type Option func(*Model)

// WithStartID opens the item with id once booting ends, skipping the lock
// screen like a deep link does.
func WithStartID(id string) Option {
	return func(m *Model) {
		m.startID = strings.TrimSpace(id)
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithScrambleSource fixes the glyph source for title reveals.
func WithScrambleSource(src scramble.Source) Option {
	return func(m *Model) {
		if src != nil {
			m.src = src
		}
	}
}

// WithMarkdownStyle selects the glamour style for dossier pages.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		if style != "" {
			m.markdownStyle = style
		}
	}
}

// Model is the Bubble Tea model of the terminal desktop.
type Model struct {
	items   []archive.Item
	session *viewstate.Session
	startID string

	bootShown int
	cursor    int
	status    string
	clock     time.Time
	reveal    *scramble.Reveal

	dossier       viewport.Model
	markdownStyle string
	width         int
	height        int

	now func() time.Time
	src scramble.Source
}

// New builds a model over items.
func New(items []archive.Item, opts ...Option) Model {
	m := Model{
		items:         items,
		dossier:       viewport.New(80, 20),
		markdownStyle: DefaultMarkdownStyle,
		width:         80,
		height:        24,
		now:           time.Now,
		src:           rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}

	path := "/"
	if m.startID != "" {
		path = "/" + m.startID
	}
	m.session = viewstate.Restore(path, items)
	m.clock = m.now()
	m.syncDossier()
	return m
}

// Run starts the program on the alternate screen until the user quits or ctx ends.
func Run(ctx context.Context, items []archive.Item, opts ...Option) error {
	program := tea.NewProgram(New(items, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init starts the boot sequence and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(bootTick(), clockTick())
}

func bootTick() tea.Cmd {
	return tea.Tick(bootInterval, func(time.Time) tea.Msg { return bootTickMsg{} })
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func revealTick() tea.Cmd {
	return tea.Tick(scramble.DefaultInterval, func(time.Time) tea.Msg { return revealTickMsg{} })
}

// Phase returns the session phase.
func (m Model) Phase() viewstate.Phase {
	return m.session.Phase()
}

// Nav returns the navigation controller.
func (m Model) Nav() *viewstate.Controller {
	return m.session.Nav
}

// Cursor returns the highlighted row on the folder list.
func (m Model) Cursor() int {
	return m.cursor
}

// Status returns the last transient message.
func (m Model) Status() string {
	return m.status
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.dossier.Width = msg.Width
		m.dossier.Height = max(msg.Height-8, 3)
		m.syncDossier()
		return m, nil
	case bootTickMsg:
		if m.session.Phase() != viewstate.PhaseBooting {
			return m, nil
		}
		m.bootShown++
		if m.bootShown < len(viewstate.BootLog) {
			return m, bootTick()
		}
		return m.finishBoot()
	case clockTickMsg:
		m.clock = time.Time(msg)
		return m, clockTick()
	case revealTickMsg:
		if m.reveal == nil || m.reveal.Done(m.now()) {
			return m, nil
		}
		return m, revealTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) finishBoot() (tea.Model, tea.Cmd) {
	m.bootShown = len(viewstate.BootLog)
	m.session.BootComplete()
	if m.session.Phase() == viewstate.PhaseUnlocked {
		return m, m.startReveal()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	switch m.session.Phase() {
	case viewstate.PhaseBooting:
		if key == "enter" || key == " " || key == "esc" {
			return m.finishBoot()
		}
		return m, nil
	case viewstate.PhaseLocked:
		if key == "enter" || key == " " {
			m.session.Unlock()
			return m, m.startReveal()
		}
		return m, nil
	}

	m.status = ""
	switch m.session.Nav.View() {
	case viewstate.ViewDossier:
		return m.handleDossierKey(msg)
	case viewstate.ViewGallery:
		return m.handleGalleryKey(key)
	default:
		return m.handleHomeKey(key)
	}
}

func (m Model) handleHomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", "right", "l":
		if m.cursor >= len(m.items) {
			return m, nil
		}
		if err := m.session.Nav.Open(m.items[m.cursor]); err != nil {
			if errors.Is(err, viewstate.ErrLocked) {
				m.status = accessDenied
			} else {
				m.status = err.Error()
			}
			return m, nil
		}
		m.syncDossier()
		return m, m.startReveal()
	}
	return m, nil
}

func (m Model) handleDossierKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.session.Nav
	switch msg.String() {
	case "esc", "backspace", "h":
		return m.back()
	case "tab", "right", "l":
		if !nav.SelectTab(nav.Tab() + 1) {
			nav.SelectTab(0)
		}
		m.syncDossier()
		return m, nil
	case "shift+tab", "left":
		item, _ := nav.Item()
		if !nav.SelectTab(nav.Tab() - 1) {
			nav.SelectTab(len(item.Tabs) - 1)
		}
		m.syncDossier()
		return m, nil
	}
	var cmd tea.Cmd
	m.dossier, cmd = m.dossier.Update(msg)
	return m, cmd
}

func (m Model) handleGalleryKey(key string) (tea.Model, tea.Cmd) {
	gallery := m.session.Nav.Gallery()
	switch key {
	case "esc", "backspace":
		return m.back()
	case "right", "l", "n":
		gallery.Next()
	case "left", "h", "p":
		gallery.Prev()
	case "+", "=":
		gallery.ZoomIn()
	case "-", "_":
		gallery.ZoomOut()
	}
	return m, nil
}

func (m Model) back() (tea.Model, tea.Cmd) {
	m.session.Nav.Back()
	return m, m.startReveal()
}

func (m *Model) startReveal() tea.Cmd {
	m.reveal = scramble.NewReveal(m.session.Nav.Title(), m.now(), m.src)
	return revealTick()
}

// syncDossier re-renders the open dossier tab into the viewport.
func (m *Model) syncDossier() {
	item, ok := m.session.Nav.Item()
	if !ok || m.session.Nav.View() != viewstate.ViewDossier {
		return
	}
	content, err := RenderDossier(item, m.session.Nav.Tab(), m.dossier.Width, m.markdownStyle)
	if err != nil {
		content = DossierMarkdown(item, m.session.Nav.Tab())
	}
	m.dossier.SetContent(content)
	m.dossier.GotoTop()
}

// View renders the current screen.
func (m Model) View() string {
	switch m.session.Phase() {
	case viewstate.PhaseBooting:
		return m.bootView()
	case viewstate.PhaseLocked:
		return m.lockView()
	}

	var body string
	switch m.session.Nav.View() {
	case viewstate.ViewDossier:
		body = m.dossierView()
	case viewstate.ViewGallery:
		body = m.galleryView()
	default:
		body = m.homeView()
	}

	var b strings.Builder
	b.WriteString(m.shellBar())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(m.footer()))
	return b.String()
}

func (m Model) bootView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(branding.Bootloader))
	b.WriteString("\n\n")
	for _, line := range viewstate.BootLog[:min(m.bootShown, len(viewstate.BootLog))] {
		b.WriteString(textStyle.Render("> " + line))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("_"))
	return b.String()
}

func (m Model) lockView() string {
	lines := []string{
		clockStyle.Render(m.clock.Format(clockLayout)),
		textStyle.Render(strings.ToUpper(m.clock.Format(dateLayout))),
		"",
		dimStyle.Render(branding.Directorate),
		accentStyle.Render("PRESS ENTER TO UNLOCK"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) shellBar() string {
	title := m.session.Nav.Title()
	if m.reveal != nil && m.reveal.Text == title {
		title = m.reveal.Frame(m.now())
	}
	left := titleStyle.Render(title)
	if m.session.Nav.CanBack() {
		left = dimStyle.Render("[ESC] < ") + left
	}
	path := dimStyle.Render("  ~/system/" + strings.ReplaceAll(strings.ToLower(m.session.Nav.Title()), " ", "_"))
	return barStyle.Width(max(m.width, 20)).Render(left + path + "  " + textStyle.Render(m.clock.Format(clockLayout)))
}

func (m Model) homeView() string {
	var b strings.Builder
	for idx, item := range m.items {
		label := fmt.Sprintf("%-10s %-24s %s", item.FileLabel(idx+1), item.Name, item.Sub)
		switch {
		case idx == m.cursor:
			label = selectStyle.Render("> " + label)
		case item.Locked:
			label = lockedStyle.Render("  " + label)
		default:
			label = textStyle.Render("  " + label)
		}
		b.WriteString(label)
		if item.Kind == archive.KindCharacter {
			b.WriteString(" " + verifiedMark)
		}
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString(dimStyle.Render("NO RECORDS"))
	}
	return b.String()
}

func (m Model) dossierView() string {
	item, _ := m.session.Nav.Item()
	tabs := make([]string, 0, len(item.Tabs))
	for idx, tab := range item.Tabs {
		style := tabStyle
		if idx == m.session.Nav.Tab() {
			style = activeTab
		}
		tabs = append(tabs, style.Render(strings.ToUpper(tab.Title)))
	}
	header := strings.Join(tabs, " ")
	return header + "\n" + m.dossier.View()
}

func (m Model) galleryView() string {
	item, _ := m.session.Nav.Item()
	gallery := m.session.Nav.Gallery()
	if gallery.Count() == 0 {
		return dimStyle.Render("NO IMAGES")
	}
	image := item.GalleryImages[gallery.Index()]
	lines := []string{
		accentStyle.Render(fmt.Sprintf("IMAGE %d / %d", gallery.Index()+1, gallery.Count())),
		textStyle.Render(image.Name),
		dimStyle.Render(image.URL),
		textStyle.Render(fmt.Sprintf("ZOOM %d%%", gallery.ZoomPercent())),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) footer() string {
	switch m.session.Nav.View() {
	case viewstate.ViewDossier:
		return "tab/←→ sections  ↑/↓ scroll  esc back  q quit"
	case viewstate.ViewGallery:
		return "←/→ image  +/- zoom  esc back  q quit"
	default:
		return "↑/↓ move  enter open  q quit"
	}
}
