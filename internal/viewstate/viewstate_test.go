package viewstate

import (
	"errors"
	"testing"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/google/go-cmp/cmp"
)

func testItems() []archive.Item {
	return []archive.Item{
		{
			ID:   "kovacs",
			Kind: archive.KindCharacter,
			Name: "Ivan Kovacs",
			Tabs: []archive.Tab{
				{Title: "Biography"},
				{Title: "Field Notes"},
			},
		},
		{
			ID:   "crime_scene",
			Kind: archive.KindGallery,
			Name: "crime scene",
			GalleryImages: []archive.GalleryImage{
				{Name: "01.png"}, {Name: "02.png"}, {Name: "03.png"},
			},
		},
		{ID: "locked_1", Kind: archive.KindLocked, Name: "COMMAND_ONLY", Locked: true},
	}
}

func TestZeroControllerIsHome(t *testing.T) {
	t.Parallel()

	var c Controller
	if c.View() != ViewHome {
		t.Fatalf("View() = %q, want %q", c.View(), ViewHome)
	}
	if c.CanBack() {
		t.Fatal("CanBack() = true on home")
	}
	if c.Path() != "/" {
		t.Fatalf("Path() = %q, want /", c.Path())
	}
	if c.Title() != HomeTitle {
		t.Fatalf("Title() = %q, want %q", c.Title(), HomeTitle)
	}
}

func TestOpenSwitchesViewByKind(t *testing.T) {
	t.Parallel()

	items := testItems()
	cases := []struct {
		item archive.Item
		want View
	}{
		{item: items[0], want: ViewDossier},
		{item: items[1], want: ViewGallery},
	}
	for _, tc := range cases {
		var c Controller
		if err := c.Open(tc.item); err != nil {
			t.Fatalf("Open(%s) error = %v", tc.item.ID, err)
		}
		if c.View() != tc.want {
			t.Fatalf("Open(%s) view = %q, want %q", tc.item.ID, c.View(), tc.want)
		}
		if c.Path() != "/"+tc.item.ID {
			t.Fatalf("Path() = %q, want /%s", c.Path(), tc.item.ID)
		}
		if c.Title() != tc.item.Name {
			t.Fatalf("Title() = %q, want %q", c.Title(), tc.item.Name)
		}
	}
}

func TestOpenLockedIsRefused(t *testing.T) {
	t.Parallel()

	var c Controller
	err := c.Open(testItems()[2])
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Open(locked) error = %v, want ErrLocked", err)
	}
	if c.View() != ViewHome {
		t.Fatalf("view changed to %q after locked open", c.View())
	}
}

func TestBackReturnsHome(t *testing.T) {
	t.Parallel()

	var c Controller
	if err := c.Open(testItems()[0]); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c.Back()
	if diff := cmp.Diff(Controller{view: ViewHome}, c, cmp.AllowUnexported(Controller{}, Gallery{})); diff != "" {
		t.Fatalf("controller after Back mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Item(); ok {
		t.Fatal("Item() still open after Back")
	}
	if c.Path() != "/" {
		t.Fatalf("Path() = %q, want /", c.Path())
	}
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path     string
		wantView View
		wantOpen bool
	}{
		{path: "/", wantView: ViewHome},
		{path: "", wantView: ViewHome},
		{path: "/KOVACS", wantView: ViewDossier, wantOpen: true},
		{path: "/crime_scene/", wantView: ViewGallery, wantOpen: true},
		{path: "/locked_1", wantView: ViewHome},
		{path: "/unknown", wantView: ViewHome},
	}
	for _, tc := range cases {
		c, opened := FromPath(tc.path, testItems())
		if opened != tc.wantOpen {
			t.Fatalf("FromPath(%q) opened = %t, want %t", tc.path, opened, tc.wantOpen)
		}
		if c.View() != tc.wantView {
			t.Fatalf("FromPath(%q) view = %q, want %q", tc.path, c.View(), tc.wantView)
		}
	}
}

func TestIDFromPathUnescapes(t *testing.T) {
	t.Parallel()

	if got := IDFromPath("/night%20watch/extra"); got != "night watch" {
		t.Fatalf("IDFromPath() = %q, want %q", got, "night watch")
	}
}

func TestTabSelection(t *testing.T) {
	t.Parallel()

	var c Controller
	if c.SelectTab(0) {
		t.Fatal("SelectTab on home should fail")
	}
	if err := c.Open(testItems()[0]); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if c.Fragment() != "#Biography" {
		t.Fatalf("Fragment() = %q, want #Biography", c.Fragment())
	}
	if !c.SelectTabByTitle("#field%20notes") {
		t.Fatal("SelectTabByTitle(#field%20notes) = false")
	}
	if c.Tab() != 1 {
		t.Fatalf("Tab() = %d, want 1", c.Tab())
	}
	if c.SelectTabByTitle("#missing") {
		t.Fatal("SelectTabByTitle(#missing) = true")
	}
	if c.SelectTab(5) {
		t.Fatal("SelectTab(5) = true")
	}
	if c.Tab() != 1 {
		t.Fatalf("Tab() = %d after invalid selection, want 1", c.Tab())
	}
}

func TestGalleryNavigationAndZoom(t *testing.T) {
	t.Parallel()

	var c Controller
	if err := c.Open(testItems()[1]); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	g := c.Gallery()
	if g.Count() != 3 || g.Index() != 0 {
		t.Fatalf("gallery = %d/%d, want 0/3", g.Index(), g.Count())
	}
	if g.Prev() {
		t.Fatal("Prev() at first image = true")
	}

	g.ZoomIn()
	g.ZoomIn()
	if g.ZoomPercent() != 144 {
		t.Fatalf("ZoomPercent() = %d, want 144", g.ZoomPercent())
	}
	if !g.Next() {
		t.Fatal("Next() = false")
	}
	if g.Zoom() != 1 {
		t.Fatalf("Zoom() = %v after image change, want 1", g.Zoom())
	}
	g.Next()
	if g.Next() {
		t.Fatal("Next() at last image = true")
	}

	for range 30 {
		g.ZoomOut()
	}
	if g.Zoom() != 0.1 {
		t.Fatalf("Zoom() = %v, want floor 0.1", g.Zoom())
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	s := NewSession(nil, false)
	if s.Phase() != PhaseBooting {
		t.Fatalf("Phase() = %s, want BOOTING", s.Phase())
	}
	if s.Unlock() {
		t.Fatal("Unlock() while booting = true")
	}
	s.BootComplete()
	if s.Phase() != PhaseLocked {
		t.Fatalf("Phase() = %s, want LOCKED", s.Phase())
	}
	if !s.Unlock() {
		t.Fatal("Unlock() = false")
	}
	if s.Phase() != PhaseUnlocked {
		t.Fatalf("Phase() = %s, want UNLOCKED", s.Phase())
	}

	deep := NewSession(nil, true)
	if !deep.DeepLink() {
		t.Fatal("DeepLink() = false")
	}
	deep.BootComplete()
	if deep.Phase() != PhaseUnlocked {
		t.Fatalf("deep link Phase() = %s, want UNLOCKED", deep.Phase())
	}
}

func TestRestoreMarksAnyItemAddressDeepLinked(t *testing.T) {
	t.Parallel()

	items := append(testItems(), archive.Item{ID: "locked_1", Kind: archive.KindLocked, Locked: true})
	tests := []struct {
		path     string
		wantView View
		wantDeep bool
	}{
		{path: "/", wantView: ViewHome, wantDeep: false},
		{path: "/kovacs", wantView: ViewDossier, wantDeep: true},
		{path: "/nobody", wantView: ViewHome, wantDeep: true},
		{path: "/locked_1", wantView: ViewHome, wantDeep: true},
	}
	for _, tc := range tests {
		s := Restore(tc.path, items)
		if s.Nav.View() != tc.wantView {
			t.Fatalf("Restore(%q) view = %q, want %q", tc.path, s.Nav.View(), tc.wantView)
		}
		if s.DeepLink() != tc.wantDeep {
			t.Fatalf("Restore(%q) DeepLink() = %t, want %t", tc.path, s.DeepLink(), tc.wantDeep)
		}
		s.BootComplete()
		wantPhase := PhaseLocked
		if tc.wantDeep {
			wantPhase = PhaseUnlocked
		}
		if s.Phase() != wantPhase {
			t.Fatalf("Restore(%q) after boot Phase() = %s, want %s", tc.path, s.Phase(), wantPhase)
		}
	}
}
