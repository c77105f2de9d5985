// Package viewstate holds the navigation state of the archive desktop: which
// view is showing, which item is open, and how it maps to the address bar.
package viewstate

import (
	"errors"
	"net/url"
	"strings"

	"github.com/cryals/art-archive/internal/archive"
)

// View is the top-level desktop view.
type View string

const (
	ViewHome    View = "HOME"
	ViewDossier View = "DOSSIER"
	ViewGallery View = "GALLERY"
)

// ErrLocked reports an attempt to open a locked entry.
var ErrLocked = errors.New("entry is locked")

// HomeTitle is the shell title shown on the home view.
const HomeTitle = "ROOT DIRECTORY"

// Controller tracks the open view and item. The zero value shows HOME.
type Controller struct {
	view    View
	item    archive.Item
	tab     int
	gallery Gallery
}

// View returns the current view, defaulting to HOME.
func (c *Controller) View() View {
	if c.view == "" {
		return ViewHome
	}
	return c.view
}

// Item returns the open item and whether one is open.
func (c *Controller) Item() (archive.Item, bool) {
	if c.View() == ViewHome {
		return archive.Item{}, false
	}
	return c.item, true
}

// CanBack reports whether Back would change the view.
func (c *Controller) CanBack() bool {
	return c.View() != ViewHome
}

// Title returns the shell title for the current view.
func (c *Controller) Title() string {
	if item, ok := c.Item(); ok {
		return item.Name
	}
	return HomeTitle
}

// Open switches to the view matching item's kind.
func (c *Controller) Open(item archive.Item) error {
	if item.Locked || item.Kind == archive.KindLocked {
		return ErrLocked
	}
	switch item.Kind {
	case archive.KindCharacter:
		c.view = ViewDossier
		c.tab = 0
	case archive.KindGallery:
		c.view = ViewGallery
		c.gallery = NewGallery(len(item.GalleryImages))
	default:
		return errors.New("entry kind is not browsable")
	}
	c.item = item
	return nil
}

// Back returns to HOME and clears the open item.
func (c *Controller) Back() {
	c.view = ViewHome
	c.item = archive.Item{}
	c.tab = 0
	c.gallery = Gallery{}
}

// Path is the address-bar path for the current state.
func (c *Controller) Path() string {
	item, ok := c.Item()
	if !ok {
		return "/"
	}
	return "/" + url.PathEscape(item.ID)
}

// FromPath restores a controller from an address-bar path. Unknown or locked
// ids leave the controller on HOME; the returned bool reports whether an item
// was opened.
func FromPath(path string, items []archive.Item) (*Controller, bool) {
	c := &Controller{}
	id := IDFromPath(path)
	if id == "" {
		return c, false
	}
	item, ok := archive.FindItem(items, id)
	if !ok {
		return c, false
	}
	if err := c.Open(item); err != nil {
		return c, false
	}
	return c, true
}

// IDFromPath extracts the first path segment as an item id.
func IDFromPath(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return ""
	}
	segment, _, _ := strings.Cut(trimmed, "/")
	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}
	return segment
}

// Tab returns the active dossier tab index.
func (c *Controller) Tab() int {
	return c.tab
}

// SelectTab activates the dossier tab at index when it exists.
func (c *Controller) SelectTab(index int) bool {
	if c.View() != ViewDossier || index < 0 || index >= len(c.item.Tabs) {
		return false
	}
	c.tab = index
	return true
}

// SelectTabByTitle activates the tab whose title matches hash, ignoring case
// and a leading '#'.
func (c *Controller) SelectTabByTitle(hash string) bool {
	title := strings.TrimPrefix(strings.TrimSpace(hash), "#")
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}
	if title == "" {
		return false
	}
	for idx, tab := range c.item.Tabs {
		if strings.EqualFold(tab.Title, title) {
			return c.SelectTab(idx)
		}
	}
	return false
}

// Fragment is the URL fragment naming the active tab.
func (c *Controller) Fragment() string {
	if c.View() != ViewDossier || c.tab >= len(c.item.Tabs) {
		return ""
	}
	return "#" + c.item.Tabs[c.tab].Title
}

// Gallery returns the gallery viewer state for the open gallery.
func (c *Controller) Gallery() *Gallery {
	return &c.gallery
}
